package domain

import "time"

// Status is the visibility state of a publication.
type Status string

const (
	// StatusPublished means the publication is publicly viewable.
	StatusPublished Status = "published"

	// StatusDraft means the publication is only visible to its owner.
	StatusDraft Status = "draft"

	// StatusScheduled means the publication becomes public at ScheduledAt.
	StatusScheduled Status = "scheduled"
)

// Valid reports whether the status is one of the known values.
func (s Status) Valid() bool {
	switch s {
	case StatusPublished, StatusDraft, StatusScheduled:
		return true
	default:
		return false
	}
}

// Stats holds aggregate reader statistics for a publication.
type Stats struct {
	// Views is the total number of recorded views.
	Views int64

	// UniqueReaders is the number of distinct readers.
	UniqueReaders int64

	// AvgReadSeconds is the average reading time in seconds.
	AvgReadSeconds float64

	// Shares is the number of times the publication was shared.
	Shares int64
}

// Publication is an uploaded PDF document together with its metadata.
// The viewer treats a publication as immutable for the duration of one
// viewing session.
type Publication struct {
	// ID is the unique identifier for the publication.
	ID string

	// Title is the human-readable title.
	Title string

	// DocumentURL locates the stored PDF (gs://, file path, or object name).
	DocumentURL string

	// CoverURL locates the cover thumbnail, if one was generated.
	CoverURL string

	// PageCount is the number of pages, recorded at upload time.
	PageCount int

	// Status is the visibility state.
	Status Status

	// ScheduledAt is the release time for scheduled publications.
	ScheduledAt *time.Time

	// Stats holds aggregate reader statistics.
	Stats Stats

	// CreatedAt is when the publication was uploaded.
	CreatedAt time.Time

	// UpdatedAt is when the publication was last modified.
	UpdatedAt time.Time
}

// EffectiveStatus resolves the status as of now. A scheduled publication
// whose release time has passed reads as published.
func (p *Publication) EffectiveStatus(now time.Time) Status {
	if p.Status == StatusScheduled && p.ScheduledAt != nil && !now.Before(*p.ScheduledAt) {
		return StatusPublished
	}
	return p.Status
}

// Viewable reports whether the publication can be opened by a public reader.
func (p *Publication) Viewable(now time.Time) bool {
	return p.EffectiveStatus(now) == StatusPublished
}
