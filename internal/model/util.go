package model

import "github.com/nrednav/cuid2"

func CreateID() string {
	return cuid2.Generate()
}
