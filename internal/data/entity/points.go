package entity

// PointsLedger maps user id to a non-negative loyalty balance.
type PointsLedger map[string]int64
