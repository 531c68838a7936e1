package pagination

import (
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Params is the page/limit pair bound from list query strings
type Params struct {
	Page  int `form:"page" json:"page"`
	Limit int `form:"limit" json:"limit"`
}

// Normalize clamps page and limit into their valid ranges
func (p *Params) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset returns the number of documents to skip
func (p Params) Offset() int64 {
	return int64((p.Page - 1) * p.Limit)
}

// FindOptions applies skip/limit to a mongo find, newest first on sortField
func (p Params) FindOptions(sortField string) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: sortField, Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(p.Offset()).
		SetLimit(int64(p.Limit))
}

// FromRequest creates normalized params from raw query values
func FromRequest(pageStr, limitStr string) Params {
	page, _ := strconv.Atoi(pageStr)
	limit, _ := strconv.Atoi(limitStr)

	p := Params{Page: page, Limit: limit}
	p.Normalize()
	return p
}
