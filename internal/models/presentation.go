package models

import (
	"fmt"
	"time"
)

// SlideLayout identifies the slide template
type SlideLayout string

const (
	LayoutTitle   SlideLayout = "title"
	LayoutContent SlideLayout = "content"
	LayoutBlank   SlideLayout = "blank"
)

// SlideContent holds the template text used by the title and content layouts
type SlideContent struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Slide is an ordered collection of elements plus background and layout
// metadata. The slide exclusively owns its elements.
type Slide struct {
	ID              int64        `json:"id"`
	BackgroundColor string       `json:"backgroundColor"`
	Layout          SlideLayout  `json:"layout"`
	Content         SlideContent `json:"content"`
	Elements        []*Element   `json:"elements"`
}

// Presentation is an ordered collection of slides. The id is the creation
// timestamp in milliseconds, also used as the storage key suffix.
type Presentation struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Slides       []*Slide  `json:"slides"`
	LastModified time.Time `json:"lastModified"`
}

// NewSlide creates an empty slide with the given layout
func NewSlide(layout SlideLayout) *Slide {
	return &Slide{
		ID:              time.Now().UnixMilli(),
		BackgroundColor: "#ffffff",
		Layout:          layout,
		Elements:        []*Element{},
	}
}

// NewPresentation creates a presentation with a single blank slide
func NewPresentation(title string) *Presentation {
	return &Presentation{
		ID:           time.Now().UnixMilli(),
		Title:        title,
		Slides:       []*Slide{NewSlide(LayoutBlank)},
		LastModified: time.Now(),
	}
}

// AddElement appends an element to the slide, bumping the id until it is
// unique within the slide (timestamp ids minted in the same millisecond
// would otherwise collide)
func (s *Slide) AddElement(e *Element) {
	for s.FindElement(e.ID) != nil {
		e.ID++
	}
	s.Elements = append(s.Elements, e)
}

// FindElement returns the element with the given id, or nil
func (s *Slide) FindElement(id int64) *Element {
	for _, e := range s.Elements {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// RemoveElement removes the element with the given id and reports whether it
// was present
func (s *Slide) RemoveElement(id int64) bool {
	for i, e := range s.Elements {
		if e.ID == id {
			s.Elements = append(s.Elements[:i], s.Elements[i+1:]...)
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the slide with a fresh id
func (s *Slide) Clone() *Slide {
	clone := &Slide{
		ID:              time.Now().UnixMilli(),
		BackgroundColor: s.BackgroundColor,
		Layout:          s.Layout,
		Content:         s.Content,
		Elements:        make([]*Element, 0, len(s.Elements)),
	}
	if clone.ID == s.ID {
		clone.ID++
	}
	for _, e := range s.Elements {
		clone.Elements = append(clone.Elements, e.Clone())
	}
	return clone
}

// Snapshot returns a deep copy of the slide preserving every id, safe to
// hand to readers outside the owner's lock
func (s *Slide) Snapshot() *Slide {
	snap := &Slide{
		ID:              s.ID,
		BackgroundColor: s.BackgroundColor,
		Layout:          s.Layout,
		Content:         s.Content,
		Elements:        make([]*Element, 0, len(s.Elements)),
	}
	for _, e := range s.Elements {
		snap.Elements = append(snap.Elements, e.Clone())
	}
	return snap
}

// Snapshot returns a deep copy of the presentation preserving every id
func (p *Presentation) Snapshot() *Presentation {
	snap := &Presentation{
		ID:           p.ID,
		Title:        p.Title,
		Slides:       make([]*Slide, 0, len(p.Slides)),
		LastModified: p.LastModified,
	}
	for _, s := range p.Slides {
		snap.Slides = append(snap.Slides, s.Snapshot())
	}
	return snap
}

// FindSlide returns the slide with the given id and its index, or nil and -1
func (p *Presentation) FindSlide(id int64) (*Slide, int) {
	for i, s := range p.Slides {
		if s.ID == id {
			return s, i
		}
	}
	return nil, -1
}

// AddSlide appends a new slide with the given layout and returns it
func (p *Presentation) AddSlide(layout SlideLayout) *Slide {
	slide := NewSlide(layout)
	for existing, _ := p.FindSlide(slide.ID); existing != nil; existing, _ = p.FindSlide(slide.ID) {
		slide.ID++
	}
	p.Slides = append(p.Slides, slide)
	return slide
}

// DuplicateSlide clones the slide with the given id and inserts the clone
// right after it
func (p *Presentation) DuplicateSlide(id int64) (*Slide, error) {
	slide, idx := p.FindSlide(id)
	if slide == nil {
		return nil, fmt.Errorf("slide %d not found", id)
	}
	clone := slide.Clone()
	for existing, _ := p.FindSlide(clone.ID); existing != nil; existing, _ = p.FindSlide(clone.ID) {
		clone.ID++
	}
	p.Slides = append(p.Slides, nil)
	copy(p.Slides[idx+2:], p.Slides[idx+1:])
	p.Slides[idx+1] = clone
	return clone, nil
}

// DeleteSlide removes the slide with the given id. A presentation always
// keeps at least one slide.
func (p *Presentation) DeleteSlide(id int64) error {
	if len(p.Slides) <= 1 {
		return fmt.Errorf("cannot delete the only slide")
	}
	_, idx := p.FindSlide(id)
	if idx < 0 {
		return fmt.Errorf("slide %d not found", id)
	}
	p.Slides = append(p.Slides[:idx], p.Slides[idx+1:]...)
	return nil
}

// MoveSlide reorders the slide at index from to index to
func (p *Presentation) MoveSlide(from, to int) error {
	if from < 0 || from >= len(p.Slides) || to < 0 || to >= len(p.Slides) {
		return fmt.Errorf("slide index out of range: %d -> %d", from, to)
	}
	slide := p.Slides[from]
	p.Slides = append(p.Slides[:from], p.Slides[from+1:]...)
	p.Slides = append(p.Slides[:to], append([]*Slide{slide}, p.Slides[to:]...)...)
	return nil
}

// Touch updates the last-modified timestamp
func (p *Presentation) Touch() {
	p.LastModified = time.Now()
}
