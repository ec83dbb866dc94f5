package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/samuveljohnson/portfolio/backend/go-services/internal/portfolio"
)

// MongoRepo stores each record as its own document in a per-collection Mongo
// collection, which gives every create and delete per-record atomicity instead
// of the whole-file rewrite the FileRepo performs. The aggregate document is
// assembled on read; lastUpdated lives in a one-row meta collection.
type MongoRepo struct {
	db *mongo.Database
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{db: db}
}

func (r *MongoRepo) Get(ctx context.Context) (*portfolio.Document, error) {
	doc := portfolio.NewDocument()

	cur, err := r.db.Collection(portfolio.CollectionCertificates).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find certificates: %w", err)
	}
	if err := cur.All(ctx, &doc.Certificates); err != nil {
		return nil, fmt.Errorf("decode certificates: %w", err)
	}

	cur, err = r.db.Collection(portfolio.CollectionSkills).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find skills: %w", err)
	}
	if err := cur.All(ctx, &doc.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}

	cur, err = r.db.Collection(portfolio.CollectionExperiences).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find experiences: %w", err)
	}
	if err := cur.All(ctx, &doc.Experiences); err != nil {
		return nil, fmt.Errorf("decode experiences: %w", err)
	}

	var meta struct {
		LastUpdated string `bson:"lastUpdated"`
	}
	err = r.db.Collection("meta").FindOne(ctx, bson.M{"_id": "portfolio"}).Decode(&meta)
	if err == nil && meta.LastUpdated != "" {
		doc.LastUpdated = meta.LastUpdated
	} else if err != nil && err != mongo.ErrNoDocuments {
		return nil, fmt.Errorf("read meta: %w", err)
	}
	normalize(doc)
	return doc, nil
}

func (r *MongoRepo) touch(ctx context.Context) error {
	opts := options.Update().SetUpsert(true)
	_, err := r.db.Collection("meta").UpdateOne(ctx,
		bson.M{"_id": "portfolio"},
		bson.M{"$set": bson.M{"lastUpdated": portfolio.Now()}},
		opts)
	return err
}

func (r *MongoRepo) insert(ctx context.Context, collection string, record interface{}) error {
	if _, err := r.db.Collection(collection).InsertOne(ctx, record); err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return r.touch(ctx)
}

func (r *MongoRepo) AddCertificate(ctx context.Context, c *portfolio.Certificate) error {
	return r.insert(ctx, portfolio.CollectionCertificates, c)
}

func (r *MongoRepo) AddSkill(ctx context.Context, s *portfolio.Skill) error {
	return r.insert(ctx, portfolio.CollectionSkills, s)
}

func (r *MongoRepo) AddExperience(ctx context.Context, e *portfolio.Experience) error {
	return r.insert(ctx, portfolio.CollectionExperiences, e)
}

func (r *MongoRepo) Delete(ctx context.Context, collection, id string) error {
	if !portfolio.KnownCollection(collection) {
		return ErrUnknownCollection
	}
	res, err := r.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return r.touch(ctx)
}
