package encounters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/dnd-alias-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dnd-alias-bot/internal/errors"
	"github.com/KirkDiggler/dnd-alias-bot/internal/repositories"
	"github.com/redis/go-redis/v9"
)

type redisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository creates a Redis-backed encounter sheet repository.
// Active flags live on the sheets themselves, so GetActive scans the owner's sheets.
func NewRedisRepository(client redis.UniversalClient) Repository {
	if client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepository{client: client}
}

func (r *redisRepository) key(id string) string {
	return fmt.Sprintf("encounter_sheet:%s", id)
}

func (r *redisRepository) ownerKey(ownerID string) string {
	return fmt.Sprintf("owner:%s:encounter_sheets", ownerID)
}

// Create stores a new encounter sheet
func (r *redisRepository) Create(ctx context.Context, sheet *entities.EncounterSheet) error {
	if err := validate(sheet); err != nil {
		return err
	}

	jsonData, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal encounter sheet: %w", err)
	}

	created, err := r.client.SetNX(ctx, r.key(sheet.ID), string(jsonData), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create encounter sheet: %w", err)
	}
	if !created {
		return repositories.NewRecordExistsError(recordName, sheet.ID)
	}

	if err := r.client.SAdd(ctx, r.ownerKey(sheet.OwnerID), sheet.ID).Err(); err != nil {
		return fmt.Errorf("failed to index encounter sheet: %w", err)
	}
	return nil
}

// Get retrieves an encounter sheet by ID
func (r *redisRepository) Get(ctx context.Context, id string) (*entities.EncounterSheet, error) {
	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, repositories.NewRecordNotFoundError(recordName, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get encounter sheet: %w", err)
	}

	var sheet entities.EncounterSheet
	if err := json.Unmarshal([]byte(jsonData), &sheet); err != nil {
		return nil, fmt.Errorf("failed to unmarshal encounter sheet: %w", err)
	}
	return &sheet, nil
}

// Update modifies an existing encounter sheet
func (r *redisRepository) Update(ctx context.Context, sheet *entities.EncounterSheet) error {
	if err := validate(sheet); err != nil {
		return err
	}

	existing, err := r.Get(ctx, sheet.ID)
	if err != nil {
		return err
	}
	if existing.OwnerID != sheet.OwnerID {
		return dnderr.InvalidArgument("encounter sheet owner cannot change")
	}

	jsonData, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("failed to marshal encounter sheet: %w", err)
	}
	if err := r.client.Set(ctx, r.key(sheet.ID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to update encounter sheet: %w", err)
	}
	return nil
}

// Delete removes an encounter sheet
func (r *redisRepository) Delete(ctx context.Context, id string) error {
	sheet, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.ownerKey(sheet.OwnerID), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete encounter sheet: %w", err)
	}
	return nil
}

// GetByOwner retrieves all encounter sheets of a user, ordered by ID
func (r *redisRepository) GetByOwner(ctx context.Context, ownerID string) ([]*entities.EncounterSheet, error) {
	ids, err := r.client.SMembers(ctx, r.ownerKey(ownerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list encounter sheets: %w", err)
	}
	if len(ids) == 0 {
		return []*entities.EncounterSheet{}, nil
	}
	sort.Strings(ids)

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get encounter sheets: %w", err)
	}

	out := make([]*entities.EncounterSheet, 0, len(values))
	for i, value := range values {
		raw, ok := value.(string)
		if !ok {
			continue
		}
		var sheet entities.EncounterSheet
		if err := json.Unmarshal([]byte(raw), &sheet); err != nil {
			return nil, fmt.Errorf("failed to unmarshal encounter sheet %s: %w", ids[i], err)
		}
		out = append(out, &sheet)
	}
	return out, nil
}

// GetActive returns the guild active sheet, else the global one
func (r *redisRepository) GetActive(ctx context.Context, ownerID, guildID string) (*entities.EncounterSheet, error) {
	sheets, err := r.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if sheet := pickActive(sheets, guildID); sheet != nil {
		return sheet, nil
	}
	return nil, dnderr.NoEncounter()
}

// SetActive makes the sheet globally active
func (r *redisRepository) SetActive(ctx context.Context, ownerID, sheetID string) error {
	return r.activate(ctx, ownerID, sheetID, "")
}

// SetServerActive makes the sheet active in the guild
func (r *redisRepository) SetServerActive(ctx context.Context, ownerID, sheetID, guildID string) error {
	if guildID == "" {
		return dnderr.InvalidArgument("guild ID is required")
	}
	return r.activate(ctx, ownerID, sheetID, guildID)
}

func (r *redisRepository) activate(ctx context.Context, ownerID, sheetID, guildID string) error {
	sheets, err := r.GetByOwner(ctx, ownerID)
	if err != nil {
		return err
	}

	owned := false
	for _, sheet := range sheets {
		if sheet.ID == sheetID {
			owned = true
			break
		}
	}
	if !owned {
		return repositories.NewRecordNotFoundError(recordName, sheetID)
	}

	changed := activate(sheets, sheetID, guildID)
	if len(changed) == 0 {
		return nil
	}

	pipe := r.client.TxPipeline()
	for _, sheet := range changed {
		jsonData, err := json.Marshal(sheet)
		if err != nil {
			return fmt.Errorf("failed to marshal encounter sheet: %w", err)
		}
		pipe.Set(ctx, r.key(sheet.ID), string(jsonData), 0)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to set active encounter sheet: %w", err)
	}
	return nil
}
