package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DailyStock is the per-store, per-day, per-milk-type ledger row. One document
// exists per (storeID, date, milkType); the date is always normalized to
// midnight UTC before it is used as part of the key.
type DailyStock struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	StoreID  primitive.ObjectID `bson:"storeID" json:"storeID"`
	Date     time.Time          `bson:"date" json:"date"`
	MilkType MilkType           `bson:"milkType" json:"milkType"`

	// Base counters, adjusted only by the recorder services.
	TotalProcured     float64 `bson:"totalProcured" json:"totalProcured"`
	SellerTotalAssign float64 `bson:"sellerTotalAssign" json:"sellerTotalAssign"`
	SellerSoldQty     float64 `bson:"sellerSoldQty" json:"sellerSoldQty"`
	DirectSoldQty     float64 `bson:"directSoldQty" json:"directSoldQty"`
	Wastage           float64 `bson:"wastage" json:"wastage"`

	// Derived fields, recomputed from the base counters after every mutation.
	// Never assigned directly outside the reconcile pass.
	SellerRemainingMilk float64 `bson:"sellerRemainingMilk" json:"sellerRemainingMilk"`
	ClosingStock        float64 `bson:"closingStock" json:"closingStock"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// StockSnapshot is the read shape handed to callers for a single milk type.
// A zero-valued snapshot stands in for days that have no ledger row yet.
type StockSnapshot struct {
	MilkType            MilkType `json:"milkType"`
	TotalProcured       float64  `json:"totalProcured"`
	SellerTotalAssign   float64  `json:"sellerTotalAssign"`
	SellerSoldQty       float64  `json:"sellerSoldQty"`
	SellerRemainingMilk float64  `json:"sellerRemainingMilk"`
	DirectSoldQty       float64  `json:"directSoldQty"`
	Wastage             float64  `json:"wastage"`
	ClosingStock        float64  `json:"closingStock"`
}

// Snapshot converts a ledger row into its read shape.
func (s *DailyStock) Snapshot() StockSnapshot {
	return StockSnapshot{
		MilkType:            s.MilkType,
		TotalProcured:       s.TotalProcured,
		SellerTotalAssign:   s.SellerTotalAssign,
		SellerSoldQty:       s.SellerSoldQty,
		SellerRemainingMilk: s.SellerRemainingMilk,
		DirectSoldQty:       s.DirectSoldQty,
		Wastage:             s.Wastage,
		ClosingStock:        s.ClosingStock,
	}
}

// EmptyStockSnapshot returns the zero-default shape for a missing ledger row.
func EmptyStockSnapshot(milkType MilkType) StockSnapshot {
	return StockSnapshot{MilkType: milkType}
}
