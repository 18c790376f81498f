package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/wishlane/wishlane/internal/middleware"
)

type friendRequestBody struct {
	Username string `json:"username"`
}

// SendFriendRequest opens a pending request towards the named user.
func (h *HandlerManager) SendFriendRequest(c *fiber.Ctx) error {
	var req friendRequestBody
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.FriendSvc.SendRequest(middleware.GetUserID(c), req.Username); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status": "pending",
	})
}

// AcceptFriendRequest accepts the pending request from the named sender.
func (h *HandlerManager) AcceptFriendRequest(c *fiber.Ctx) error {
	if err := h.FriendSvc.Accept(middleware.GetUserID(c), c.Params("username")); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "accepted",
	})
}

// RejectFriendRequest rejects the pending request from the named sender.
func (h *HandlerManager) RejectFriendRequest(c *fiber.Ctx) error {
	if err := h.FriendSvc.Reject(middleware.GetUserID(c), c.Params("username")); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "rejected",
	})
}

// CancelFriendRequest withdraws the caller's own pending request.
func (h *HandlerManager) CancelFriendRequest(c *fiber.Ctx) error {
	if err := h.FriendSvc.Cancel(middleware.GetUserID(c), c.Params("username")); err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"status": "cancelled",
	})
}

// RemoveFriend deletes the friendship with the named user.
func (h *HandlerManager) RemoveFriend(c *fiber.Ctx) error {
	if err := h.FriendSvc.RemoveFriend(middleware.GetUserID(c), c.Params("username")); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// ListFriends returns the caller's friends.
func (h *HandlerManager) ListFriends(c *fiber.Ctx) error {
	friends, err := h.FriendSvc.ListFriends(middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"friends": friends,
	})
}

// IncomingFriendRequests returns pending requests addressed to the caller.
func (h *HandlerManager) IncomingFriendRequests(c *fiber.Ctx) error {
	requests, err := h.FriendSvc.IncomingRequests(middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

// OutgoingFriendRequests returns pending requests the caller has sent.
func (h *HandlerManager) OutgoingFriendRequests(c *fiber.Ctx) error {
	requests, err := h.FriendSvc.OutgoingRequests(middleware.GetUserID(c))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}
