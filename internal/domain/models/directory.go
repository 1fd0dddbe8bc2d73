package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is a milk shop owned by a single user. All ledger rows and events are
// scoped to a store.
type Store struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	Name      string             `bson:"name" json:"name"`
	Address   string             `bson:"address,omitempty" json:"address,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Vendor supplies milk to a store.
type Vendor struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StoreID   primitive.ObjectID `bson:"storeID" json:"storeID"`
	Name      string             `bson:"name" json:"name"`
	Mobile    string             `bson:"mobile,omitempty" json:"mobile,omitempty"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Seller delivers milk to customers on behalf of a store.
type Seller struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	StoreID   primitive.ObjectID `bson:"storeID" json:"storeID"`
	IsActive  bool               `bson:"isActive" json:"isActive"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Customer receives daily milk deliveries from a store's seller.
type Customer struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	StoreID      primitive.ObjectID `bson:"storeID" json:"storeID"`
	FullAddress  string             `bson:"fullAddress,omitempty" json:"fullAddress,omitempty"`
	MilkType     MilkType           `bson:"milkType" json:"milkType"`
	DailyQty     float64            `bson:"dailyQty" json:"dailyQty"`
	RatePerLiter float64            `bson:"ratePerLiter,omitempty" json:"ratePerLiter,omitempty"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
