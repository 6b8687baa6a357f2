package policy

import (
	"testing"

	"github.com/rakesh3649/Fitness/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDefaultRolesFor(t *testing.T) {
	p := Default()
	admin := []models.Role{models.RoleAdmin}
	both := []models.Role{models.RoleAdmin, models.RoleUser}

	for _, tc := range []struct {
		capability Capability
		want       []models.Role
	}{
		{ContactList, admin},
		{ContactUpdate, admin},
		{CallbackList, admin},
		{CallbackUpdate, admin},
		{OrderList, admin},
		{OrderUpdateStatus, admin},
		{ProductWrite, admin},
		{OrderCreate, both},
		{OrderRead, both},
		{OrderUpdatePayment, both},
	} {
		t.Run(string(tc.capability), func(t *testing.T) {
			assert.Equal(t, tc.want, p.RolesFor(tc.capability))
		})
	}
}

func TestAllowsOn(t *testing.T) {
	p := Default()
	owner := &models.Account{Id: primitive.NewObjectID(), Role: models.RoleUser}
	stranger := &models.Account{Id: primitive.NewObjectID(), Role: models.RoleUser}
	admin := &models.Account{Id: primitive.NewObjectID(), Role: models.RoleAdmin}

	// Reading an order and updating its payment follow the same rule.
	for _, c := range []Capability{OrderRead, OrderUpdatePayment} {
		assert.True(t, p.AllowsOn(owner, c, owner.Id), c)
		assert.False(t, p.AllowsOn(stranger, c, owner.Id), c)
		assert.True(t, p.AllowsOn(admin, c, owner.Id), c)
	}

	assert.False(t, p.AllowsOn(owner, OrderUpdateStatus, owner.Id))
	assert.False(t, p.AllowsOn(nil, OrderRead, owner.Id))
	assert.True(t, p.AllowsOn(admin, ContactList, owner.Id))
	assert.False(t, p.AllowsOn(owner, ContactList, owner.Id))
}

func TestCustomTable(t *testing.T) {
	p := New(Grants{models.RoleUser: {ProductWrite: ScopeAny}})
	assert.Equal(t, ScopeAny, p.Scope(models.RoleUser, ProductWrite))
	assert.Equal(t, ScopeNone, p.Scope(models.RoleAdmin, ProductWrite))
	assert.Empty(t, p.RolesFor(ContactList))
}
