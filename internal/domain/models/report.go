package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StockTotals aggregates one milk type's ledger row for reporting.
type StockTotals struct {
	Procured  float64 `bson:"procured" json:"procured"`
	Assigned  float64 `bson:"assigned" json:"assigned"`
	Sold      float64 `bson:"sold" json:"sold"`
	Direct    float64 `bson:"direct" json:"direct"`
	Wastage   float64 `bson:"wastage" json:"wastage"`
	Closing   float64 `bson:"closing" json:"closing"`
	Remaining float64 `bson:"remaining" json:"remaining"`
}

// DailyStockReport is the end-of-day summary stored per store.
type DailyStockReport struct {
	StoreID   primitive.ObjectID `bson:"storeID" json:"storeID"`
	StoreName string             `bson:"storeName" json:"storeName"`
	Date      time.Time          `bson:"date" json:"date"`
	Cow       StockTotals        `bson:"cow" json:"cow"`
	Buffalo   StockTotals        `bson:"buffalo" json:"buffalo"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
