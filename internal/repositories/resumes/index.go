package resumes

import (
	"slices"

	"github.com/dmitrijs2005/cvmaster/internal/models"
)

// Index resolves résumés by their own id and by owner. Ownership is looked
// up in two phases: first by account id, then by account email, so a résumé
// stays visible after its owner was recreated under a new id.
type Index struct {
	items   []models.SavedResume
	byID    map[string]int
	byOwner map[string][]int
	byEmail map[string][]int
}

// NewIndex indexes items without copying them; positions refer to items.
func NewIndex(items []models.SavedResume) *Index {
	ix := &Index{
		items:   items,
		byID:    make(map[string]int, len(items)),
		byOwner: make(map[string][]int),
		byEmail: make(map[string][]int),
	}
	for i := range items {
		r := &items[i]
		if _, dup := ix.byID[r.ID]; !dup {
			ix.byID[r.ID] = i
		}
		ix.byOwner[r.UserID] = append(ix.byOwner[r.UserID], i)
		if r.UserEmail != "" {
			ix.byEmail[r.UserEmail] = append(ix.byEmail[r.UserEmail], i)
		}
	}
	return ix
}

// Find returns the position of the résumé with id.
func (ix *Index) Find(id string) (int, bool) {
	i, ok := ix.byID[id]
	return i, ok
}

// ForAccount returns the résumés owned by ref in archive order, each once.
func (ix *Index) ForAccount(ref models.AccountRef) []models.SavedResume {
	positions := slices.Clone(ix.byOwner[ref.ID])
	if ref.Email != "" {
		positions = append(positions, ix.byEmail[ref.Email]...)
	}
	slices.Sort(positions)
	positions = slices.Compact(positions)

	out := make([]models.SavedResume, 0, len(positions))
	for _, p := range positions {
		out = append(out, ix.items[p])
	}
	return out
}
