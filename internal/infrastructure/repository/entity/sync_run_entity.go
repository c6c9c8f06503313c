package entity

import (
	"time"

	"shopify-template-sync/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoSyncRunDoc represents a sync run in MongoDB
type MongoSyncRunDoc struct {
	ID         primitive.ObjectID    `bson:"_id,omitempty"`
	Source     string                `bson:"source"`
	Template   string                `bson:"template"`
	StartedAt  time.Time             `bson:"startedAt"`
	FinishedAt time.Time             `bson:"finishedAt"`
	Failures   int                   `bson:"failures"`
	Outcomes   []MongoShopOutcomeDoc `bson:"outcomes"`
}

// MongoShopOutcomeDoc is embedded in MongoSyncRunDoc, one per target shop
type MongoShopOutcomeDoc struct {
	Shop            string `bson:"shop"`
	Existed         bool   `bson:"existed"`
	Pushed          bool   `bson:"pushed"`
	PushSkipped     bool   `bson:"pushSkipped"`
	PushError       string `bson:"pushError,omitempty"`
	ImagesRequested bool   `bson:"imagesRequested"`
	ImagesFound     int    `bson:"imagesFound"`
	ImagesUploaded  int    `bson:"imagesUploaded"`
	ImageError      string `bson:"imageError,omitempty"`
}

// ToDomain converts the MongoDB document to a domain entity
func (d *MongoSyncRunDoc) ToDomain() *domain.SyncRun {
	run := &domain.SyncRun{
		Source:     d.Source,
		Template:   d.Template,
		StartedAt:  d.StartedAt,
		FinishedAt: d.FinishedAt,
		Outcomes:   make([]domain.ShopOutcome, 0, len(d.Outcomes)),
	}
	if !d.ID.IsZero() {
		run.ID = d.ID.Hex()
	}
	for _, o := range d.Outcomes {
		run.Outcomes = append(run.Outcomes, domain.ShopOutcome{
			Shop:            o.Shop,
			Existed:         o.Existed,
			Pushed:          o.Pushed,
			PushSkipped:     o.PushSkipped,
			PushError:       o.PushError,
			ImagesRequested: o.ImagesRequested,
			ImagesFound:     o.ImagesFound,
			ImagesUploaded:  o.ImagesUploaded,
			ImageError:      o.ImageError,
		})
	}
	return run
}

// MongoSyncRunDocFromDomain converts a domain entity to a MongoDB document
func MongoSyncRunDocFromDomain(run *domain.SyncRun) *MongoSyncRunDoc {
	doc := &MongoSyncRunDoc{
		Source:     run.Source,
		Template:   run.Template,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Failures:   run.Failures(),
		Outcomes:   make([]MongoShopOutcomeDoc, 0, len(run.Outcomes)),
	}

	if run.ID != "" {
		if objID, err := primitive.ObjectIDFromHex(run.ID); err == nil {
			doc.ID = objID
		}
	}

	for _, o := range run.Outcomes {
		doc.Outcomes = append(doc.Outcomes, MongoShopOutcomeDoc{
			Shop:            o.Shop,
			Existed:         o.Existed,
			Pushed:          o.Pushed,
			PushSkipped:     o.PushSkipped,
			PushError:       o.PushError,
			ImagesRequested: o.ImagesRequested,
			ImagesFound:     o.ImagesFound,
			ImagesUploaded:  o.ImagesUploaded,
			ImageError:      o.ImageError,
		})
	}

	return doc
}
