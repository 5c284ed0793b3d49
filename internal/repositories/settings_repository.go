package repositories

import (
	"context"

	"coachingfees/internal/docstore"
	"coachingfees/internal/domain"
	"coachingfees/internal/domain/models"
)

type SettingsRepository struct {
	Store docstore.Store
}

func (r SettingsRepository) store() docstore.Store {
	if r.Store != nil {
		return r.Store
	}
	return docstore.MySQLStore{}
}

// Load returns the singleton settings document, creating the default one
// lazily when the collection is empty.
func (r SettingsRepository) Load(ctx context.Context) (models.Settings, error) {
	docs, err := r.store().List(ctx, docstore.CollectionSettings, docstore.ListOptions{Limit: 1})
	if err != nil {
		return models.Settings{}, domain.StoreError{Op: "load settings", Err: err}
	}
	if len(docs) > 0 {
		return models.SettingsFromDocument(docs[0]), nil
	}

	doc, err := r.store().Create(ctx, docstore.CollectionSettings, models.DefaultSettings().Fields())
	if err != nil {
		return models.Settings{}, domain.StoreError{Op: "create settings", Err: err}
	}
	return models.SettingsFromDocument(doc), nil
}

// Save writes the singleton in place, creating it when absent.
func (r SettingsRepository) Save(ctx context.Context, s models.Settings) (models.Settings, error) {
	existing, err := r.store().List(ctx, docstore.CollectionSettings, docstore.ListOptions{Limit: 1})
	if err != nil {
		return models.Settings{}, domain.StoreError{Op: "load settings", Err: err}
	}

	var doc docstore.Document
	if len(existing) > 0 {
		doc, err = r.store().Update(ctx, docstore.CollectionSettings, existing[0].ID, s.Fields())
	} else {
		doc, err = r.store().Create(ctx, docstore.CollectionSettings, s.Fields())
	}
	if err != nil {
		return models.Settings{}, domain.StoreError{Op: "save settings", Err: err}
	}
	return models.SettingsFromDocument(doc), nil
}
