package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements Store on top of a MongoDB database. Each logical
// collection maps to a Mongo collection of the same name; a document's
// logical id lives in _id, whether caller-supplied (barcodes, usernames)
// or store-assigned (ObjectID hex).
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

func (m *MongoStore) Set(col, id string, fields Fields) *Operation {
	return start(func() (any, error) {
		_, err := m.db.Collection(col).ReplaceOne(context.Background(),
			bson.M{"_id": id}, bson.M(fields), options.Replace().SetUpsert(true))
		if err != nil {
			return nil, fmt.Errorf("set %s/%s: %w", col, id, err)
		}
		return nil, nil
	})
}

func (m *MongoStore) Update(col, id string, fields Fields) *Operation {
	return start(func() (any, error) {
		res, err := m.db.Collection(col).UpdateOne(context.Background(),
			bson.M{"_id": id}, bson.M{"$set": bson.M(fields)})
		if err != nil {
			return nil, fmt.Errorf("update %s/%s: %w", col, id, err)
		}
		if res.MatchedCount == 0 {
			return nil, fmt.Errorf("update %s/%s: %w", col, id, ErrNoDocument)
		}
		return nil, nil
	})
}

func (m *MongoStore) Get(col, id string) *Operation {
	return start(func() (any, error) {
		var raw bson.M
		err := m.db.Collection(col).FindOne(context.Background(), bson.M{"_id": id}).Decode(&raw)
		if err == mongo.ErrNoDocuments {
			return Snapshot{ID: id}, nil
		}
		if err != nil {
			return nil, fmt.Errorf("get %s/%s: %w", col, id, err)
		}
		return snapshotFromDoc(id, raw), nil
	})
}

func (m *MongoStore) Add(col string, fields Fields) *Operation {
	return start(func() (any, error) {
		id := primitive.NewObjectID().Hex()
		doc := bson.M{"_id": id}
		for k, v := range fields {
			doc[k] = v
		}
		if _, err := m.db.Collection(col).InsertOne(context.Background(), doc); err != nil {
			return nil, fmt.Errorf("add %s: %w", col, err)
		}
		return id, nil
	})
}

func (m *MongoStore) Find(col string, conds ...Cond) *Operation {
	return start(func() (any, error) {
		filter := bson.M{}
		for _, c := range conds {
			switch c.Op {
			case OpEq:
				filter[c.Field] = c.Value
			case OpGte, OpLt:
				rng, ok := filter[c.Field].(bson.M)
				if !ok {
					rng = bson.M{}
					filter[c.Field] = rng
				}
				if c.Op == OpGte {
					rng["$gte"] = c.Value
				} else {
					rng["$lt"] = c.Value
				}
			default:
				return nil, fmt.Errorf("find %s: unsupported operator %q", col, c.Op)
			}
		}

		cur, err := m.db.Collection(col).Find(context.Background(), filter)
		if err != nil {
			return nil, fmt.Errorf("find %s: %w", col, err)
		}

		var raws []bson.M
		if err := cur.All(context.Background(), &raws); err != nil {
			return nil, fmt.Errorf("find %s: %w", col, err)
		}

		snaps := make([]Snapshot, 0, len(raws))
		for _, raw := range raws {
			id, _ := raw["_id"].(string)
			snaps = append(snaps, snapshotFromDoc(id, raw))
		}
		return snaps, nil
	})
}

func (m *MongoStore) Delete(col, id string) *Operation {
	return start(func() (any, error) {
		res, err := m.db.Collection(col).DeleteOne(context.Background(), bson.M{"_id": id})
		if err != nil {
			return nil, fmt.Errorf("delete %s/%s: %w", col, id, err)
		}
		if res.DeletedCount == 0 {
			return nil, fmt.Errorf("delete %s/%s: %w", col, id, ErrNoDocument)
		}
		return nil, nil
	})
}

// Close disconnects from the database, bridged like every other call.
func (m *MongoStore) Close() *Operation {
	return start(func() (any, error) {
		return nil, m.client.Disconnect(context.Background())
	})
}

// snapshotFromDoc strips the key out of the raw document and normalizes
// driver-specific value types so Snapshot accessors stay store-agnostic.
func snapshotFromDoc(id string, raw bson.M) Snapshot {
	fields := make(Fields, len(raw))
	for k, v := range raw {
		if k == "_id" {
			continue
		}
		if dt, ok := v.(primitive.DateTime); ok {
			v = dt.Time()
		}
		fields[k] = v
	}
	return Snapshot{ID: id, Fields: fields}
}
