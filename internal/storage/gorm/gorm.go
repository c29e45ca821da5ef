// Package gormstorage implements storage.Backend over any GORM dialect.
// The sqlite and postgres backends embed it and only add connection handling.
package gormstorage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/modgarage/customizer/internal/database"
	"github.com/modgarage/customizer/internal/model"
	"github.com/modgarage/customizer/internal/model/convert"
	"github.com/modgarage/customizer/internal/storage"
	"github.com/modgarage/customizer/pkg/core"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Compile-time interface check
var _ storage.Backend = (*Backend)(nil)

// Dependencies holds all dependencies for the GORM storage backend.
type Dependencies struct {
	DB     *gorm.DB
	Logger zerolog.Logger
	// SeedSamples inserts the sample designs into an empty table on Init.
	SeedSamples bool
}

// Backend implements storage.Backend on a *gorm.DB.
type Backend struct {
	deps Dependencies
}

// New creates a new GORM storage backend.
func New(deps Dependencies) *Backend {
	return &Backend{deps: deps}
}

// DB returns the underlying connection.
func (b *Backend) DB() *gorm.DB {
	return b.deps.DB
}

// Init migrates the schema and seeds samples into an empty table.
func (b *Backend) Init() error {
	if b.deps.DB == nil {
		return errors.New("gorm backend: no database")
	}
	b.deps.Logger.Info().Msg("Migrating schema")
	if err := database.Migrate(b.deps.DB); err != nil {
		return err
	}

	if b.deps.SeedSamples {
		if err := b.seed(); err != nil {
			return err
		}
	}

	b.deps.Logger.Info().Msg("Database setup complete")
	return nil
}

func (b *Backend) seed() error {
	var count int64
	if err := b.deps.DB.Model(&model.Design{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count designs: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, d := range storage.SampleDesigns() {
		rec := convert.CoreToDesign(d)
		if err := b.deps.DB.Create(&rec).Error; err != nil {
			return fmt.Errorf("failed to seed %s: %w", d.ID, err)
		}
	}
	b.deps.Logger.Info().Int("count", len(storage.SampleDesigns())).Msg("Seeded sample designs")
	return nil
}

// Close releases the connection pool.
func (b *Backend) Close() error {
	if b.deps.DB == nil {
		return nil
	}
	return database.Close(b.deps.DB)
}

func (b *Backend) List(ctx context.Context) ([]core.Design, error) {
	var recs []model.Design
	if err := b.deps.DB.WithContext(ctx).Order("seq").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list designs: %w", err)
	}

	out := make([]core.Design, 0, len(recs))
	for _, r := range recs {
		out = append(out, convert.DesignToCore(r))
	}
	return out, nil
}

func (b *Backend) Get(ctx context.Context, id string) (core.Design, error) {
	rec, err := b.find(b.deps.DB.WithContext(ctx), id)
	if err != nil {
		return core.Design{}, err
	}
	return convert.DesignToCore(rec), nil
}

func (b *Backend) find(tx *gorm.DB, id string) (model.Design, error) {
	var rec model.Design
	err := tx.Where("id = ?", id).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Design{}, fmt.Errorf("design %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return model.Design{}, fmt.Errorf("failed to get design %s: %w", id, err)
	}
	return rec, nil
}

func (b *Backend) Create(ctx context.Context, d *core.Design) error {
	now := storage.Now()
	d.ID = uuid.NewString()
	d.CreatedAt = &now
	d.UpdatedAt = &now

	rec := convert.CoreToDesign(*d)
	if err := b.deps.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("failed to create design: %w", err)
	}
	return nil
}

func (b *Backend) Update(ctx context.Context, d *core.Design) error {
	if d.ID == "" {
		return storage.ErrMissingID
	}

	return b.deps.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := b.find(tx, d.ID)
		if err != nil {
			return err
		}

		now := storage.Now()
		if d.CreatedAt == nil {
			created := existing.CreatedAt
			d.CreatedAt = &created
		}
		d.UpdatedAt = &now

		rec := convert.CoreToDesign(*d)
		err = tx.Model(&model.Design{}).
			Where("id = ?", d.ID).
			Select("name", "base_model", "modifications", "created_at", "updated_at").
			Updates(&rec).Error
		if err != nil {
			return fmt.Errorf("failed to update design %s: %w", d.ID, err)
		}
		return nil
	})
}

func (b *Backend) Delete(ctx context.Context, id string) error {
	if id == "" {
		return storage.ErrMissingID
	}

	res := b.deps.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Design{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete design %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("design %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
