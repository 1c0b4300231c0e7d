package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bankcore/customer-service/internal/core/domain"
)

const collectionCustomers = "customers"

// CustomerRepository persists customers in MongoDB.
type CustomerRepository struct {
	col *mongo.Collection
}

func NewCustomerRepository(db *mongo.Database) *CustomerRepository {
	return &CustomerRepository{col: db.Collection(collectionCustomers)}
}

// FindAll returns every customer document.
func (r *CustomerRepository) FindAll(ctx context.Context) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find customers: %w", err)
	}
	defer cursor.Close(ctx)

	var customers []domain.Customer
	if err := cursor.All(ctx, &customers); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	return customers, nil
}

// FindByID retrieves a customer by its hex object id.
func (r *CustomerRepository) FindByID(ctx context.Context, id string) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Customer
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Not-found names the resource and identifier for the caller.
			return nil, fmt.Errorf("%w: id %s", domain.ErrCustomerNotFound, id)
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return &c, nil
}

// Save upserts. A customer without an id gets a server-assigned one; an
// existing id replaces the stored document wholesale.
func (r *CustomerRepository) Save(ctx context.Context, c *domain.Customer) (*domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if c.ID == "" {
		c.ID = primitive.NewObjectID().Hex()
	}

	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c, options.Replace().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDNIExists
		}
		return nil, fmt.Errorf("save customer: %w", err)
	}
	return c, nil
}

// DeleteByID removes the customer document. Deleting a missing id is not an
// error at this layer; the service checks existence first.
func (r *CustomerRepository) DeleteByID(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete customer: %w", err)
	}
	return nil
}

// ExistsByDNI reports whether any customer carries the national id.
func (r *CustomerRepository) ExistsByDNI(ctx context.Context, dni string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"dni": dni}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count by dni: %w", err)
	}
	return n > 0, nil
}

// EnsureIndexes creates the customers collection indexes. The unique dni
// index backs the creation-time uniqueness invariant.
func (r *CustomerRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "dni", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "customer_type", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
