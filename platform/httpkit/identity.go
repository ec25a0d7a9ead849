// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated user's identity.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access user information without depending on Gin.
type Identity interface {
	// UserID returns the authenticated user's ID.
	UserID() uuid.UUID
	// Role returns the user's role within its salon.
	Role() string
	// TenantID returns the salon the user belongs to, or nil.
	TenantID() *uuid.UUID
	// EmployeeID returns the user's employee record, or nil for users
	// without an employee profile.
	EmployeeID() *uuid.UUID
	// IsAuthenticated returns true if the user is authenticated.
	IsAuthenticated() bool
}

// identity is the concrete implementation of Identity.
type identity struct {
	userID        uuid.UUID
	role          string
	tenantID      *uuid.UUID
	employeeID    *uuid.UUID
	authenticated bool
}

func (i *identity) UserID() uuid.UUID {
	return i.userID
}

func (i *identity) Role() string {
	return i.role
}

func (i *identity) TenantID() *uuid.UUID {
	return i.tenantID
}

func (i *identity) EmployeeID() *uuid.UUID {
	return i.employeeID
}

func (i *identity) IsAuthenticated() bool {
	return i.authenticated
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if user info is not present.
func GetIdentity(c *gin.Context) Identity {
	userID, userOK := c.Get(ContextUserIDKey)
	if !userOK {
		return &identity{authenticated: false}
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}
	}

	out := &identity{userID: uid, authenticated: true}

	if role, ok := c.Get(ContextRoleKey); ok {
		out.role, _ = role.(string)
	}
	if tenantID, ok := c.Get(ContextTenantIDKey); ok {
		if tid, ok := tenantID.(uuid.UUID); ok {
			out.tenantID = &tid
		}
	}
	if employeeID, ok := c.Get(ContextEmployeeIDKey); ok {
		if eid, ok := employeeID.(uuid.UUID); ok {
			out.employeeID = &eid
		}
	}

	return out
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the user is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id := GetIdentity(c)
	if !id.IsAuthenticated() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
