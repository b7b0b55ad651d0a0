package handler

import (
	"github.com/gin-gonic/gin"
	appmember "github.com/jpashop/backend/internal/application/member"
	"github.com/jpashop/backend/internal/domain/member"
	"github.com/jpashop/backend/internal/domain/shared/valueobject"
	"github.com/jpashop/backend/internal/interfaces/http/dto"
)

// MemberHandler serves the member endpoints of both API versions
type MemberHandler struct {
	BaseHandler
	memberService *appmember.MemberService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *appmember.MemberService) *MemberHandler {
	return &MemberHandler{memberService: memberService}
}

// JoinV1 godoc
// @Summary      Join a member (entity body)
// @Description  Registers a member from the entity JSON. Names must be unique.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body member.Member true "Member entity"
// @Success      200 {object} appmember.CreateMemberResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/v1/members [post]
func (h *MemberHandler) JoinV1(c *gin.Context) {
	var body member.Member
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := valueobject.NewAddress(body.Address.City, body.Address.Street, body.Address.Zipcode)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	m, err := member.NewMember(body.Name, address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := h.memberService.Join(c.Request.Context(), m)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appmember.CreateMemberResponse{ID: id})
}

// JoinV2 godoc
// @Summary      Join a member
// @Description  Registers a member from a request DTO decoupled from the entity.
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        request body appmember.CreateMemberRequest true "Member to register"
// @Success      200 {object} appmember.CreateMemberResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/v2/members [post]
func (h *MemberHandler) JoinV2(c *gin.Context) {
	var req appmember.CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	address, err := req.Address.ToAddress()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	m, err := member.NewMember(req.Name, address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	id, err := h.memberService.Join(c.Request.Context(), m)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appmember.CreateMemberResponse{ID: id})
}

// UpdateV2 godoc
// @Summary      Rename a member
// @Tags         members
// @Accept       json
// @Produce      json
// @Param        id path int true "Member ID"
// @Param        request body appmember.UpdateMemberRequest true "New name"
// @Success      200 {object} appmember.UpdateMemberResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      409 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/v2/members/{id} [post]
func (h *MemberHandler) UpdateV2(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}
	var req appmember.UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	m, err := h.memberService.Update(c.Request.Context(), id, req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, appmember.UpdateMemberResponse{ID: m.ID, Name: m.Name})
}

// ListV1 godoc
// @Summary      List member entities
// @Tags         members
// @Produce      json
// @Success      200 {array} member.Member
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v1/members [get]
func (h *MemberHandler) ListV1(c *gin.Context) {
	members, err := h.memberService.FindMembers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// ListV2 godoc
// @Summary      List member names
// @Description  Wraps the member DTOs in a result carrying their count.
// @Tags         members
// @Produce      json
// @Success      200 {object} dto.Result[[]appmember.MemberDTO]
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v2/members [get]
func (h *MemberHandler) ListV2(c *gin.Context) {
	members, err := h.memberService.FindMembers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	dtos := appmember.ToMemberDTOs(members)
	h.Success(c, dto.NewCountedResult(dtos, len(dtos)))
}

// Get godoc
// @Summary      Get member by ID
// @Tags         members
// @Produce      json
// @Param        id path int true "Member ID"
// @Success      200 {object} member.Member
// @Failure      400 {object} dto.ErrorResponse
// @Failure      404 {object} dto.ErrorResponse
// @Failure      500 {object} dto.ErrorResponse
// @Router       /api/v2/members/{id} [get]
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := h.int64Param(c, "id")
	if !ok {
		return
	}
	m, err := h.memberService.FindOne(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}
