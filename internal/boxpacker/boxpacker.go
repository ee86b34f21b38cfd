// Package boxpacker is the outer multi-box collaborator spec.md names but
// does not specify: given a pool of candidate boxes and a flat list of
// items, it tries each box's core packer.VolumePacker, ranks the candidate
// PackedBoxes, and repeats against the unpacked remainder until every item
// is placed or no candidate box can make further progress.
package boxpacker

import (
	"errors"
	"runtime"
	"sort"
	"sync"

	"github.com/palletize/cargopack/internal/packer"
)

// ErrNoItems is returned when Pack is called with no items to place.
var ErrNoItems = errors.New("boxpacker: no items to pack")

// ErrNoBoxes is returned when Pack is called with no candidate boxes.
var ErrNoBoxes = errors.New("boxpacker: no candidate boxes configured")

// Options configures a Pack run.
type Options struct {
	// Logger receives debug context from each candidate's VolumePacker.
	Logger packer.Logger
	// Workers bounds how many candidate boxes are trial-packed
	// concurrently. Defaults to runtime.GOMAXPROCS(0) when zero.
	Workers int
}

// Result is everything Pack produced: the boxes chosen (in the order they
// were committed) and whatever items none of the candidate boxes could fit.
type Result struct {
	Packed   []*packer.PackedBox
	Unpacked []*packer.Item
}

// Pack repeatedly chooses the best candidate box for the current remaining
// items (per VolumePacker instances run independently — core instances are
// safe to run in parallel, spec.md §5) until items run out or no box can
// make further progress.
func Pack(items []*packer.Item, boxes []*packer.Box, opts Options) (Result, error) {
	if len(items) == 0 {
		return Result{}, ErrNoItems
	}
	if len(boxes) == 0 {
		return Result{}, ErrNoBoxes
	}
	logger := opts.Logger
	if logger == nil {
		logger = packer.NoopLogger()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	remaining := packer.NewItemList(items...)
	candidates := append([]*packer.Box(nil), boxes...)

	var result Result
	for remaining.Count() > 0 {
		box, packed, leftover := bestCandidate(remaining, candidates, workers, logger)
		if box == nil {
			break
		}

		result.Packed = append(result.Packed, packed)
		box.DecreaseAmount()
		candidates = dropExhausted(candidates)

		remaining = packer.NewItemList(leftover...)
	}

	result.Unpacked = remaining.Iterate()
	return result, nil
}

type trial struct {
	box     *packer.Box
	packed  *packer.PackedBox
	leftover []*packer.Item
}

// bestCandidate runs one VolumePacker per eligible box concurrently (bounded
// by workers) and picks the winner: most items packed first, then lowest
// per-layer weight variance, then smallest box volume.
func bestCandidate(remaining *packer.ItemList, boxes []*packer.Box, workers int, logger packer.Logger) (*packer.Box, *packer.PackedBox, []*packer.Item) {
	eligible := make([]*packer.Box, 0, len(boxes))
	for _, b := range boxes {
		if amount := b.GetAmount(); amount != nil && *amount <= 0 {
			continue
		}
		eligible = append(eligible, b)
	}
	if len(eligible) == 0 {
		return nil, nil, nil
	}

	// Sort once, single-threaded, before fanning out: ItemList.Clone() calls
	// ensureSorted, which mutates the list in place on its first (dirty)
	// call. Calling remaining.Clone() directly from each goroutine would
	// race every one of them against the same backing slice. Cloning here
	// forces that one-time sort, so every goroutine's own Clone() below
	// only reads an already-sorted, no-longer-dirty snapshot.
	sorted := remaining.Clone()

	trials := make([]trial, len(eligible))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, box := range eligible {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, box *packer.Box) {
			defer wg.Done()
			defer func() { <-sem }()

			vp := packer.NewVolumePacker(box, sorted.Clone(), logger)
			packed := vp.Pack()
			trials[i] = trial{box: box, packed: packed, leftover: vp.Unpacked()}
		}(i, box)
	}
	wg.Wait()

	candidates := make([]trial, 0, len(trials))
	for _, t := range trials {
		if t.packed != nil && t.packed.Items.Len() > 0 {
			candidates = append(candidates, t)
		}
	}
	if len(candidates) == 0 {
		return nil, nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.packed.Items.Len() != b.packed.Items.Len() {
			return a.packed.Items.Len() > b.packed.Items.Len()
		}
		if va, vb := layerWeightVariance(a.packed), layerWeightVariance(b.packed); va != vb {
			return va < vb
		}
		return a.box.Volume() < b.box.Volume()
	})

	winner := candidates[0]
	return winner.box, winner.packed, winner.leftover
}

func dropExhausted(boxes []*packer.Box) []*packer.Box {
	out := boxes[:0:0]
	for _, b := range boxes {
		if amount := b.GetAmount(); amount != nil && *amount <= 0 {
			continue
		}
		out = append(out, b)
	}
	return out
}

// layerWeightVariance returns the population variance of each layer's total
// item weight, used as a tiebreak so BoxPacker prefers evenly-loaded boxes.
func layerWeightVariance(pb *packer.PackedBox) float64 {
	if len(pb.Layers) == 0 {
		return 0
	}
	weights := make([]float64, len(pb.Layers))
	var sum float64
	for i, layer := range pb.Layers {
		var w float64
		for _, it := range layer.Items() {
			w += float64(it.Item.Weight)
		}
		weights[i] = w
		sum += w
	}
	mean := sum / float64(len(weights))
	var variance float64
	for _, w := range weights {
		d := w - mean
		variance += d * d
	}
	return variance / float64(len(weights))
}
