package listings

import (
	"github.com/chfrealty/horsefarm/internal/model"
	"github.com/chfrealty/horsefarm/pkg/mlsgrid"
)

const (
	orderRecent = "ModificationTimestamp desc"
	orderPrice  = "ListPrice desc"
)

func (s *Service) activeInState() string {
	return mlsgrid.And(
		mlsgrid.Eq("StandardStatus", "Active"),
		mlsgrid.Eq("StateOrProvince", s.cfg.State),
	)
}

// allQuery lists active in-state listings, most recently modified first.
func (s *Service) allQuery() mlsgrid.Query {
	return mlsgrid.Query{
		Filter:  s.activeInState(),
		OrderBy: orderRecent,
		Top:     s.cfg.PageSize,
		Select:  mlsgrid.DefaultSelect,
	}
}

// byIDQuery matches either identifier.
func byIDQuery(id string) mlsgrid.Query {
	return mlsgrid.Query{
		Filter: mlsgrid.Or(mlsgrid.Eq("ListingKey", id), mlsgrid.Eq("ListingId", id)),
		Top:    1,
		Select: mlsgrid.DefaultSelect,
	}
}

// featuredQuery over-fetches by price so scoring has candidates to rank.
func (s *Service) featuredQuery(limit int) mlsgrid.Query {
	return mlsgrid.Query{
		Filter:  s.activeInState(),
		OrderBy: orderPrice,
		Top:     limit * 2,
		Select:  mlsgrid.DefaultSelect,
	}
}

// SearchFilter renders the remotely filterable part of f. Stall and arena
// constraints are not RESO fields and are applied after fetch.
func SearchFilter(f model.PropertyFilters) string {
	clauses := []string{mlsgrid.Eq("StandardStatus", "Active")}

	if f.MinPrice != nil {
		clauses = append(clauses, mlsgrid.GeInt("ListPrice", *f.MinPrice))
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, mlsgrid.LeInt("ListPrice", *f.MaxPrice))
	}
	if f.MinAcreage != nil {
		clauses = append(clauses, mlsgrid.GeFloat("LotSizeAcres", *f.MinAcreage))
	}
	if f.MaxAcreage != nil {
		clauses = append(clauses, mlsgrid.LeFloat("LotSizeAcres", *f.MaxAcreage))
	}
	if f.City != nil && *f.City != "" {
		clauses = append(clauses, mlsgrid.EqFold("City", *f.City))
	}
	if f.PropertyType != nil {
		if t, ok := mlsTypeFor[*f.PropertyType]; ok {
			clauses = append(clauses, mlsgrid.Eq("PropertyType", t))
		}
	}

	return mlsgrid.And(clauses...)
}

func (s *Service) searchQuery(f model.PropertyFilters) mlsgrid.Query {
	return mlsgrid.Query{
		Filter:  SearchFilter(f),
		OrderBy: orderRecent,
		Top:     s.cfg.PageSize,
		Select:  mlsgrid.DefaultSelect,
	}
}

func probeQuery() mlsgrid.Query {
	return mlsgrid.Query{Top: 1, Count: true}
}
