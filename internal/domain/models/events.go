package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MilkProcurement records a vendor supplying milk to a store. One record per
// (vendor, store, date); its quantity contributes to the ledger row keyed by
// the first milk type in MilkTypesSupplied.
type MilkProcurement struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	VendorID          primitive.ObjectID `bson:"vendorId" json:"vendorId"`
	StoreID           primitive.ObjectID `bson:"storeID" json:"storeID"`
	MilkTypesSupplied []MilkType         `bson:"milkTypesSupplied" json:"milkTypesSupplied"`
	Quantity          float64            `bson:"quantity" json:"quantity"`
	RatePerLiter      float64            `bson:"ratePerLiter" json:"ratePerLiter"`
	TotalAmount       float64            `bson:"totalAmount" json:"totalAmount"`
	Date              time.Time          `bson:"date" json:"date"`
	Notes             string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// MilkType returns the ledger key type this procurement contributes to.
func (p *MilkProcurement) MilkType() MilkType {
	if len(p.MilkTypesSupplied) == 0 {
		return MilkTypeCow
	}
	return p.MilkTypesSupplied[0]
}

// MilkAssign records the owner handing milk to a seller for the day. One
// record per (store, seller, milkType, date).
type MilkAssign struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StoreID   primitive.ObjectID `bson:"storeID" json:"storeID"`
	SellerID  primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	MilkType  MilkType           `bson:"milkType" json:"milkType"`
	Quantity  float64            `bson:"quantity" json:"quantity"`
	Date      time.Time          `bson:"date" json:"date"`
	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty" json:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// DeliveryStatus is the lifecycle state of a milk delivery.
type DeliveryStatus string

const (
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

// MilkDelivery records a seller delivering milk to a customer. At most one
// record per (customer, seller, date); resubmitting updates it in place.
type MilkDelivery struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StoreID    primitive.ObjectID `bson:"storeID" json:"storeID"`
	SellerID   primitive.ObjectID `bson:"sellerId" json:"sellerId"`
	CustomerID primitive.ObjectID `bson:"customerId" json:"customerId"`
	MilkType   MilkType           `bson:"milkType" json:"milkType"`
	MilkQty    float64            `bson:"milkQty" json:"milkQty"`
	Date       time.Time          `bson:"date" json:"date"`
	Status     DeliveryStatus     `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt" json:"updatedAt"`
}
