package repository

import (
	"context"
	"errors"
	"regexp"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/umalmyha/contacts/internal/model"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const contactsCollection = "contacts"

// ListFilter narrows down contacts selection.
// Zero value means no filtering - all contacts are returned
type ListFilter struct {
	Status model.Status
	Search string
}

// ContactRepository provides access to persisted contacts
type ContactRepository interface {
	Create(context.Context, *model.Contact) error
	FindAll(context.Context, ListFilter) ([]*model.Contact, error)
	FindByID(context.Context, string) (*model.Contact, error)
	Update(context.Context, *model.Contact) error
	DeleteByID(context.Context, string) error
}

type mongoContactRepository struct {
	collection *mongo.Collection
}

// NewMongoContactRepository builds mongodb-backed ContactRepository
func NewMongoContactRepository(client *mongo.Client, database string) ContactRepository {
	return &mongoContactRepository{collection: client.Database(database).Collection(contactsCollection)}
}

func (repo *mongoContactRepository) Create(ctx context.Context, c *model.Contact) error {
	if _, err := repo.collection.InsertOne(ctx, c); err != nil {
		return err
	}
	return nil
}

func (repo *mongoContactRepository) FindAll(ctx context.Context, filter ListFilter) ([]*model.Contact, error) {
	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}

	if filter.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": rx},
			bson.M{"company": rx},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := repo.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	contacts := make([]*model.Contact, 0)
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (repo *mongoContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	if err := repo.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (repo *mongoContactRepository) Update(ctx context.Context, c *model.Contact) error {
	if _, err := repo.collection.ReplaceOne(ctx, bson.M{"_id": c.ID}, c); err != nil {
		return err
	}
	return nil
}

func (repo *mongoContactRepository) DeleteByID(ctx context.Context, id string) error {
	if _, err := repo.collection.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return err
	}
	return nil
}

type postgresContactRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresContactRepository builds postgresql-backed ContactRepository
func NewPostgresContactRepository(p *pgxpool.Pool) ContactRepository {
	return &postgresContactRepository{pool: p}
}

func (repo *postgresContactRepository) Create(ctx context.Context, c *model.Contact) error {
	q := `INSERT INTO contacts(id, name, company, email, phone, status, created_at)
                       VALUES($1, $2, $3, $4, $5, $6, $7)`
	_, err := repo.pool.Exec(ctx, q, c.ID, c.Name, c.Company, c.Email, c.Phone, string(c.Status), c.CreatedAt)
	return err
}

func (repo *postgresContactRepository) FindAll(ctx context.Context, filter ListFilter) ([]*model.Contact, error) {
	contacts := make([]*model.Contact, 0)
	q := `SELECT id, name, company, email, phone, status, created_at FROM contacts
           WHERE ($1 = '' OR status = $1)
             AND ($2 = '' OR name ILIKE '%' || $2 || '%' OR company ILIKE '%' || $2 || '%')
           ORDER BY created_at DESC`

	rows, err := repo.pool.Query(ctx, q, string(filter.Status), filter.Search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (repo *postgresContactRepository) FindByID(ctx context.Context, id string) (*model.Contact, error) {
	var c model.Contact
	q := "SELECT id, name, company, email, phone, status, created_at FROM contacts WHERE id = $1"

	row := repo.pool.QueryRow(ctx, q, id)
	if err := row.Scan(&c.ID, &c.Name, &c.Company, &c.Email, &c.Phone, &c.Status, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (repo *postgresContactRepository) Update(ctx context.Context, c *model.Contact) error {
	q := `UPDATE contacts SET name = $1, company = $2, email = $3, phone = $4, status = $5
           WHERE id = $6`
	_, err := repo.pool.Exec(ctx, q, c.Name, c.Company, c.Email, c.Phone, string(c.Status), c.ID)
	return err
}

func (repo *postgresContactRepository) DeleteByID(ctx context.Context, id string) error {
	_, err := repo.pool.Exec(ctx, "DELETE FROM contacts WHERE id = $1", id)
	return err
}
