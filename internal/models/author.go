package models

import "time"

type Social struct {
	Twitter  string `json:"twitter,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Website  string `json:"website,omitempty"`
}

type Author struct {
	ID        string     `json:"id,omitempty"`
	Name      string     `json:"name"`
	Bio       string     `json:"bio,omitempty"`
	Avatar    string     `json:"avatar,omitempty"`
	Social    Social     `json:"social"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}
