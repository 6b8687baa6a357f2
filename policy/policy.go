// Package policy is the authorization table: which role holds which
// capability, and whether it applies to the caller's own records or to any.
// Routes and handlers ask the table instead of comparing roles themselves.
package policy

import (
	"sort"

	"github.com/rakesh3649/Fitness/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Capability string

const (
	ContactList    Capability = "contact:list"
	ContactUpdate  Capability = "contact:update"
	CallbackList   Capability = "callback:list"
	CallbackUpdate Capability = "callback:update"

	OrderCreate        Capability = "order:create"
	OrderRead          Capability = "order:read"
	OrderList          Capability = "order:list"
	OrderUpdateStatus  Capability = "order:update-status"
	OrderUpdatePayment Capability = "order:update-payment"

	ProductWrite Capability = "product:write"
)

// Scope says which records a grant covers.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAny
)

type Grants map[models.Role]map[Capability]Scope

type Policy struct {
	grants Grants
}

func New(grants Grants) *Policy {
	return &Policy{grants: grants}
}

// Default is the site's table. Customers act on their own orders; admins
// act on everything. Reading an order and updating its payment follow the
// same owner-or-admin rule.
func Default() *Policy {
	return New(Grants{
		models.RoleUser: {
			OrderCreate:        ScopeOwn,
			OrderRead:          ScopeOwn,
			OrderUpdatePayment: ScopeOwn,
		},
		models.RoleAdmin: {
			ContactList:        ScopeAny,
			ContactUpdate:      ScopeAny,
			CallbackList:       ScopeAny,
			CallbackUpdate:     ScopeAny,
			OrderCreate:        ScopeOwn,
			OrderRead:          ScopeAny,
			OrderList:          ScopeAny,
			OrderUpdateStatus:  ScopeAny,
			OrderUpdatePayment: ScopeAny,
			ProductWrite:       ScopeAny,
		},
	})
}

func (p *Policy) Scope(role models.Role, c Capability) Scope {
	return p.grants[role][c]
}

// RolesFor lists the roles holding c in any scope, sorted.
func (p *Policy) RolesFor(c Capability) []models.Role {
	var roles []models.Role
	for role, caps := range p.grants {
		if caps[c] != ScopeNone {
			roles = append(roles, role)
		}
	}
	sort.Slice(roles, func(i, j int) bool { return roles[i] < roles[j] })
	return roles
}

// AllowsOn reports whether the account may apply c to a record owned by owner.
func (p *Policy) AllowsOn(a *models.Account, c Capability, owner primitive.ObjectID) bool {
	if a == nil {
		return false
	}
	switch p.Scope(a.Role, c) {
	case ScopeAny:
		return true
	case ScopeOwn:
		return owner == a.Id
	default:
		return false
	}
}
