package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencrepo -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
)

// Repository defines the interface for random encounter table storage
type Repository interface {
	// Create stores a new encounter sheet
	Create(ctx context.Context, sheet *entities.EncounterSheet) error

	// Get retrieves an encounter sheet by ID
	Get(ctx context.Context, id string) (*entities.EncounterSheet, error)

	// Update modifies an existing encounter sheet
	Update(ctx context.Context, sheet *entities.EncounterSheet) error

	// Delete removes an encounter sheet
	Delete(ctx context.Context, id string) error

	// GetByOwner retrieves all encounter sheets of a user
	GetByOwner(ctx context.Context, ownerID string) ([]*entities.EncounterSheet, error)

	// GetActive returns the sheet active in the guild, else the globally active one.
	// Returns dnderr.NoEncounter when neither exists.
	GetActive(ctx context.Context, ownerID, guildID string) (*entities.EncounterSheet, error)

	// SetActive makes the sheet the owner's globally active one
	SetActive(ctx context.Context, ownerID, sheetID string) error

	// SetServerActive makes the sheet the owner's active one in the guild
	SetServerActive(ctx context.Context, ownerID, sheetID, guildID string) error
}

// pickActive applies the guild-then-global lookup to an owner's sheets
func pickActive(sheets []*entities.EncounterSheet, guildID string) *entities.EncounterSheet {
	if guildID != "" {
		for _, sheet := range sheets {
			if sheet.IsActiveIn(guildID) {
				return sheet
			}
		}
	}
	for _, sheet := range sheets {
		if sheet.Active {
			return sheet
		}
	}
	return nil
}

// activate flips the active flags across an owner's sheets, returning the ones that changed.
// An empty guildID sets the global flag.
func activate(sheets []*entities.EncounterSheet, sheetID, guildID string) []*entities.EncounterSheet {
	var changed []*entities.EncounterSheet
	for _, sheet := range sheets {
		isTarget := sheet.ID == sheetID
		if guildID == "" {
			if sheet.Active != isTarget {
				sheet.Active = isTarget
				changed = append(changed, sheet)
			}
			continue
		}
		if isTarget && !sheet.IsActiveIn(guildID) {
			sheet.SetServerActive(guildID)
			changed = append(changed, sheet)
		} else if !isTarget && sheet.UnsetServerActive(guildID) {
			changed = append(changed, sheet)
		}
	}
	return changed
}

func validate(sheet *entities.EncounterSheet) error {
	if sheet == nil {
		return dnderr.InvalidArgument("encounter sheet cannot be nil")
	}
	if sheet.ID == "" {
		return dnderr.InvalidArgument("encounter sheet ID is required")
	}
	if sheet.OwnerID == "" {
		return dnderr.InvalidArgument("encounter sheet owner ID is required")
	}
	return nil
}
