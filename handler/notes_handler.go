package handler

import (
	"errors"
	"log"

	"notable/dto"
	"notable/repository"
	"notable/usecase"
	"notable/utils"

	"github.com/gin-gonic/gin"
)

func noteError(c *gin.Context, err error) {
	var validationErr *usecase.ValidationError
	switch {
	case errors.Is(err, repository.ErrNoteNotFound):
		utils.NotFound(c, "note not found")
	case errors.As(err, &validationErr):
		utils.BadRequest(c, validationErr.Message)
	default:
		log.Printf("Note operation failed: %v", err)
		utils.InternalError(c, "note operation failed")
	}
}

func GetUserNotesHandler(c *gin.Context, notesService *usecase.NotesService) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}

	notes, err := notesService.GetUserNotes(c.Request.Context(), caller)
	if err != nil {
		noteError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

func CreateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := notesService.CreateNote(c.Request.Context(), caller, req.Title, req.Content)
	if err != nil {
		noteError(c, err)
		return
	}

	utils.Created(c, dto.ToNoteResponse(note))
}

func GetNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	noteID := c.Param("id")

	note, err := notesService.GetNote(c.Request.Context(), caller, noteID)
	if err != nil {
		noteError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

// UpdateNoteHandler serves PUT: both fields are required.
func UpdateNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	noteID := c.Param("id")

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := notesService.UpdateNote(c.Request.Context(), caller, noteID, &req.Title, &req.Content)
	if err != nil {
		noteError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

// PatchNoteHandler serves PATCH: absent fields are left untouched.
func PatchNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	noteID := c.Param("id")

	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "invalid request body")
		return
	}

	note, err := notesService.UpdateNote(c.Request.Context(), caller, noteID, req.Title, req.Content)
	if err != nil {
		noteError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func DeleteNoteHandler(c *gin.Context, notesService *usecase.NotesService) {
	caller, ok := requireIdentity(c)
	if !ok {
		return
	}
	noteID := c.Param("id")

	if err := notesService.DeleteNote(c.Request.Context(), caller, noteID); err != nil {
		noteError(c, err)
		return
	}

	utils.NoContent(c)
}
