package member

import (
	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/domain/shared/valueobject"
)

// AddressRequest is the optional address part of a join request
type AddressRequest struct {
	City    string `json:"city" binding:"max=100"`
	Street  string `json:"street" binding:"max=200"`
	Zipcode string `json:"zipcode" binding:"max=20"`
}

// ToAddress converts the request into the value object
func (r *AddressRequest) ToAddress() (valueobject.Address, error) {
	if r == nil {
		return valueobject.Address{}, nil
	}
	return valueobject.NewAddress(r.City, r.Street, r.Zipcode)
}

// CreateMemberRequest is the body of the v2 join endpoint
type CreateMemberRequest struct {
	Name    string          `json:"name" binding:"required,max=100"`
	Address *AddressRequest `json:"address"`
}

// UpdateMemberRequest is the body of the v2 update endpoint
type UpdateMemberRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateMemberResponse carries the generated member ID
type CreateMemberResponse struct {
	ID int64 `json:"id"`
}

// UpdateMemberResponse carries the member's state after the update
type UpdateMemberResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MemberDTO is the public view of a member in list responses
type MemberDTO struct {
	Name string `json:"name"`
}

// ToMemberDTOs maps members to their public view
func ToMemberDTOs(members []member.Member) []MemberDTO {
	dtos := make([]MemberDTO, 0, len(members))
	for _, m := range members {
		dtos = append(dtos, MemberDTO{Name: m.Name})
	}
	return dtos
}
