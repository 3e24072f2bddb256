package core

import "github.com/google/uuid"

// Vehicle is the payload carried by an occupied road cell
type Vehicle struct {
	ID    uuid.UUID
	Color RGB
}
