package search

import (
	"testing"

	"github.com/GarageLink/GarageLink/internal/customer"
	"github.com/GarageLink/GarageLink/internal/vehicle"
)

func candWith(plate, make_, model, ownerName, ownerPhone string) Candidate {
	c := Candidate{
		Vehicle: vehicle.Vehicle{PlateNumber: plate, Make: make_, Model: model},
	}
	if ownerName != "" || ownerPhone != "" {
		c.Customer = &customer.Customer{Name: ownerName, Phone: ownerPhone}
	}
	return c
}

func TestScoreContainmentBonus(t *testing.T) {
	c := candWith("ABC1234", "", "", "", "")
	got := Score("BC123", "", c)
	if got < 0.95 {
		t.Fatalf("contained substring must score >= 0.95, got %f", got)
	}
}

func TestScoreExactMatch(t *testing.T) {
	c := candWith("XYZ789", "", "", "", "")
	if got := Score("XYZ789", "789", c); got < 0.95 {
		t.Fatalf("exact plate must score near 1, got %f", got)
	}
}

func TestScorePhoneChannel(t *testing.T) {
	c := candWith("AAA111", "", "", "Jane Doe", "(555) 123-4567")
	got := Score("ZZZZZZZZ", "5551234567", c)
	// 电话全等：距离 0 * 0.9 折扣 = 0 → 得分 1
	if got != 1 {
		t.Fatalf("exact phone digits must score 1, got %f", got)
	}
}

func TestScorePhoneDiscount(t *testing.T) {
	c := candWith("", "", "", "", "5551234567")
	// 一位之差：文本通道无可比字段，电话通道 0.1*0.9=0.09 → 0.91
	got := Score("", "5551234568", c)
	if got < 0.90 || got > 0.92 {
		t.Fatalf("near-miss phone score out of range: %f", got)
	}
}

func TestScoreNoComparableFields(t *testing.T) {
	if got := Score("", "", Candidate{}); got != 0 {
		t.Fatalf("no comparison possible must score 0, got %f", got)
	}
}

func TestScoreMakeModelField(t *testing.T) {
	c := candWith("QQQ000", "Toyota", "Corolla", "", "")
	if got := Score("TOYOTA COROLLA", "", c); got < 0.95 {
		t.Fatalf("exact make+model must score near 1, got %f", got)
	}
}

func TestScoreDeterministic(t *testing.T) {
	c := candWith("ABC1234", "Honda", "Civic", "John Smith", "555-0000000")
	a := Score("HND CIVIC", "5550000000", c)
	for i := 0; i < 10; i++ {
		if b := Score("HND CIVIC", "5550000000", c); b != a {
			t.Fatalf("score not deterministic: %f vs %f", a, b)
		}
	}
}
