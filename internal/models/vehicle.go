package models

import "fmt"

// Entity is what the selector needs to know about a registry record.
type Entity interface {
	Key() int
	Title() string
	Label() string
}

// VehicleType is a vehicle category a manufacturer builds.
type VehicleType struct {
	IsPrimary bool   `json:"IsPrimary"`
	Name      string `json:"Name"`
}

// Manufacturer represents a vPIC manufacturer record.
type Manufacturer struct {
	ID           int           `json:"Mfr_ID"`
	Name         string        `json:"Mfr_Name"`
	CommonName   string        `json:"Mfr_CommonName"`
	Country      string        `json:"Country"`
	VehicleTypes []VehicleType `json:"VehicleTypes"`
}

func (m Manufacturer) Key() int      { return m.ID }
func (m Manufacturer) Title() string { return m.Name }

// Label is the text shown once the manufacturer is picked, e.g. "Acme, USA".
func (m Manufacturer) Label() string {
	if m.Country == "" {
		return m.Name
	}
	return fmt.Sprintf("%s, %s", m.Name, m.Country)
}

// Make represents a vPIC make record, owned by a manufacturer.
type Make struct {
	ID           int    `json:"Make_ID"`
	Name         string `json:"Make_Name"`
	Manufacturer string `json:"Mfr_Name"`
}

func (m Make) Key() int      { return m.ID }
func (m Make) Title() string { return m.Name }
func (m Make) Label() string { return m.Name }

// Model represents a vPIC model record, owned by a make.
type Model struct {
	MakeID   int    `json:"Make_ID"`
	MakeName string `json:"Make_Name"`
	ID       int    `json:"Model_ID"`
	Name     string `json:"Model_Name"`
}

func (m Model) Key() int      { return m.ID }
func (m Model) Title() string { return m.Name }
func (m Model) Label() string { return m.Name }

// Response is the envelope every vPIC endpoint wraps its results in.
type Response[T any] struct {
	Count          int    `json:"Count"`
	Message        string `json:"Message"`
	SearchCriteria string `json:"SearchCriteria"`
	Results        []T    `json:"Results"`
}

// Selection is a fully resolved manufacturer/make/model triple.
type Selection struct {
	Manufacturer Manufacturer
	Make         Make
	Model        Model
}

func (s Selection) String() string {
	return fmt.Sprintf("%s / %s / %s", s.Manufacturer.Label(), s.Make.Label(), s.Model.Label())
}
