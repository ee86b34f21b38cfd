package httpapi

import "github.com/palletize/cargopack/internal/packer"

// ItemDTO is the wire representation of an item to pack.
type ItemDTO struct {
	Description string `json:"description"`
	Width       int    `json:"width"`
	Length      int    `json:"length"`
	Depth       int    `json:"depth"`
	Weight      int    `json:"weight"`
	KeepFlat    bool   `json:"keep_flat,omitempty"`

	// MaxCount, when non-nil, rejects the (max+1)th item sharing this
	// description from being placed in the same box.
	MaxCount *int `json:"max_count,omitempty"`
	// NotAboveFragile, when set, names another item's description that
	// must be the last thing placed in any box this item joins.
	NotAboveFragile string `json:"not_above_fragile,omitempty"`
}

func (d ItemDTO) toItem() *packer.Item {
	it := &packer.Item{
		Description: d.Description,
		Width:       d.Width,
		Length:      d.Length,
		Depth:       d.Depth,
		Weight:      d.Weight,
		KeepFlat:    d.KeepFlat,
	}
	switch {
	case d.MaxCount != nil:
		it.CanBePackedInBox = packer.MaxCountPredicate(d.Description, *d.MaxCount)
	case d.NotAboveFragile != "":
		it.CanBePackedInBox = packer.NotAboveFragilePredicate(d.NotAboveFragile)
	}
	return it
}

func itemToDTO(it *packer.Item) ItemDTO {
	return ItemDTO{
		Description: it.Description,
		Width:       it.Width,
		Length:      it.Length,
		Depth:       it.Depth,
		Weight:      it.Weight,
		KeepFlat:    it.KeepFlat,
	}
}

// BoxDTO is the wire representation of a candidate box.
type BoxDTO struct {
	Reference       string `json:"reference"`
	Width           int    `json:"width"`
	Length          int    `json:"length"`
	Depth           int    `json:"depth"`
	EmptyWeight     int    `json:"empty_weight,omitempty"`
	MaxWeight       int    `json:"max_weight"`
	RemainingAmount *int   `json:"remaining_amount,omitempty"`
}

func (d BoxDTO) toBox() *packer.Box {
	return &packer.Box{
		Reference:       d.Reference,
		InnerWidth:      d.Width,
		InnerLength:     d.Length,
		InnerDepth:      d.Depth,
		EmptyWeight:     d.EmptyWeight,
		MaxWeight:       d.MaxWeight,
		RemainingAmount: d.RemainingAmount,
	}
}

// PackRequest is the POST /pack request body.
type PackRequest struct {
	Items []ItemDTO `json:"items"`
	Boxes []BoxDTO  `json:"boxes"`
}

// PackedItemDTO is one placed item in the response.
type PackedItemDTO struct {
	Description string `json:"description"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Z           int    `json:"z"`
	Width       int    `json:"width"`
	Length      int    `json:"length"`
	Depth       int    `json:"depth"`
}

// PackedBoxDTO is one used box and everything placed inside it.
type PackedBoxDTO struct {
	Reference string          `json:"reference"`
	FillRatio float64         `json:"fill_ratio"`
	Weight    int             `json:"weight"`
	Items     []PackedItemDTO `json:"items"`
}

// PackResponse is the POST /pack response body.
type PackResponse struct {
	PackedBoxes     []PackedBoxDTO `json:"packed_boxes"`
	UnpackedItems   []ItemDTO      `json:"unpacked_items"`
	TotalVolume     int            `json:"total_volume"`
	Utilization     float64        `json:"utilization_percent"`
	VisualizationID string         `json:"visualization_id,omitempty"`
}

func buildPackedBoxDTO(pb *packer.PackedBox) PackedBoxDTO {
	dto := PackedBoxDTO{
		Reference: pb.Box.Reference,
		FillRatio: pb.FillRatio(),
		Weight:    pb.Weight(),
	}
	for _, it := range pb.Items.Items() {
		dto.Items = append(dto.Items, PackedItemDTO{
			Description: it.Item.Description,
			X:           it.X, Y: it.Y, Z: it.Z,
			Width: it.Width, Length: it.Length, Depth: it.Depth,
		})
	}
	return dto
}
