package encounters

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories"
)

const recordName = "encounter sheet"

type inMemoryRepository struct {
	mu      sync.RWMutex
	sheets  map[string]*entities.EncounterSheet
	byOwner map[string][]string // ownerID -> sheet IDs
}

// NewInMemoryRepository creates a new in-memory encounter sheet repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		sheets:  make(map[string]*entities.EncounterSheet),
		byOwner: make(map[string][]string),
	}
}

// Create stores a new encounter sheet
func (r *inMemoryRepository) Create(_ context.Context, sheet *entities.EncounterSheet) error {
	if err := validate(sheet); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sheets[sheet.ID]; exists {
		return repositories.NewRecordExistsError(recordName, sheet.ID)
	}

	stored, err := cloneSheet(sheet)
	if err != nil {
		return err
	}
	r.sheets[sheet.ID] = stored
	r.byOwner[sheet.OwnerID] = append(r.byOwner[sheet.OwnerID], sheet.ID)
	return nil
}

// Get retrieves an encounter sheet by ID
func (r *inMemoryRepository) Get(_ context.Context, id string) (*entities.EncounterSheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheet, exists := r.sheets[id]
	if !exists {
		return nil, repositories.NewRecordNotFoundError(recordName, id)
	}
	return cloneSheet(sheet)
}

// Update modifies an existing encounter sheet
func (r *inMemoryRepository) Update(_ context.Context, sheet *entities.EncounterSheet) error {
	if err := validate(sheet); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.sheets[sheet.ID]
	if !exists {
		return repositories.NewRecordNotFoundError(recordName, sheet.ID)
	}
	if existing.OwnerID != sheet.OwnerID {
		return dnderr.InvalidArgument("encounter sheet owner cannot change")
	}

	stored, err := cloneSheet(sheet)
	if err != nil {
		return err
	}
	r.sheets[sheet.ID] = stored
	return nil
}

// Delete removes an encounter sheet
func (r *inMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sheet, exists := r.sheets[id]
	if !exists {
		return repositories.NewRecordNotFoundError(recordName, id)
	}
	delete(r.sheets, id)

	ids := r.byOwner[sheet.OwnerID]
	for i, sheetID := range ids {
		if sheetID == id {
			r.byOwner[sheet.OwnerID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

// GetByOwner retrieves all encounter sheets of a user, ordered by ID
func (r *inMemoryRepository) GetByOwner(_ context.Context, ownerID string) ([]*entities.EncounterSheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.ownedLocked(ownerID)
}

func (r *inMemoryRepository) ownedLocked(ownerID string) ([]*entities.EncounterSheet, error) {
	ids := append([]string(nil), r.byOwner[ownerID]...)
	sort.Strings(ids)

	out := make([]*entities.EncounterSheet, 0, len(ids))
	for _, id := range ids {
		sheet, err := cloneSheet(r.sheets[id])
		if err != nil {
			return nil, err
		}
		out = append(out, sheet)
	}
	return out, nil
}

// GetActive returns the guild active sheet, else the global one
func (r *inMemoryRepository) GetActive(_ context.Context, ownerID, guildID string) (*entities.EncounterSheet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sheets, err := r.ownedLocked(ownerID)
	if err != nil {
		return nil, err
	}
	if sheet := pickActive(sheets, guildID); sheet != nil {
		return sheet, nil
	}
	return nil, dnderr.NoEncounter()
}

// SetActive makes the sheet globally active
func (r *inMemoryRepository) SetActive(_ context.Context, ownerID, sheetID string) error {
	return r.activate(ownerID, sheetID, "")
}

// SetServerActive makes the sheet active in the guild
func (r *inMemoryRepository) SetServerActive(_ context.Context, ownerID, sheetID, guildID string) error {
	if guildID == "" {
		return dnderr.InvalidArgument("guild ID is required")
	}
	return r.activate(ownerID, sheetID, guildID)
}

func (r *inMemoryRepository) activate(ownerID, sheetID, guildID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	target, exists := r.sheets[sheetID]
	if !exists || target.OwnerID != ownerID {
		return repositories.NewRecordNotFoundError(recordName, sheetID)
	}

	sheets, err := r.ownedLocked(ownerID)
	if err != nil {
		return err
	}
	for _, sheet := range activate(sheets, sheetID, guildID) {
		r.sheets[sheet.ID] = sheet
	}
	return nil
}

func cloneSheet(sheet *entities.EncounterSheet) (*entities.EncounterSheet, error) {
	data, err := json.Marshal(sheet)
	if err != nil {
		return nil, dnderr.Wrap(err, "failed to copy encounter sheet")
	}
	var out entities.EncounterSheet
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, dnderr.Wrap(err, "failed to copy encounter sheet")
	}
	return &out, nil
}
