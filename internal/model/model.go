package model

import "time"

// User is an account that can own categorieën and spullen and register as
// deler. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Voornaam     string    `json:"voornaam"`
	Achternaam   string    `json:"achternaam"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// CategorieInfo is the read projection of a categorie (view_categorie),
// joined with the owner's contact details.
type CategorieInfo struct {
	ID           int64  `json:"id"`
	Naam         string `json:"naam"`
	Beschrijving string `json:"beschrijving"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
}

// SpullenInfo is the read projection of spullen (view_spullen).
type SpullenInfo struct {
	ID           int64  `json:"id"`
	Naam         string `json:"naam"`
	Beschrijving string `json:"beschrijving"`
	Merk         string `json:"merk"`
	Soort        string `json:"soort"`
	Bouwjaar     int    `json:"bouwjaar"`
	Contact      string `json:"contact"`
	Email        string `json:"email"`
}

// DelerInfo is the contact projection of a registration (view_delers).
type DelerInfo struct {
	Voornaam   string `json:"voornaam"`
	Achternaam string `json:"achternaam"`
	Email      string `json:"email"`
}
