package usecase

import (
	"context"
	"fmt"
	"strings"

	"notable/model"
	"notable/repository"
	"notable/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

type NotesService struct {
	NotesRepo *repository.NotesRepo
}

func validateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", newValidationError("note title is required")
	}
	if len(title) > model.MaxTitleLength {
		// Reject, never truncate; the client supplied the title.
		return "", newValidationError(fmt.Sprintf("note title exceeds %d characters", model.MaxTitleLength))
	}
	return title, nil
}

func validateContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return newValidationError("note content is required")
	}
	return nil
}

// GetUserNotes lists the caller's notes, newest first. Other users' notes
// are unreachable by construction.
func (svc *NotesService) GetUserNotes(ctx context.Context, caller model.Identity) ([]*model.Note, error) {
	notes, err := svc.NotesRepo.GetUserNotes(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	utils.TrackNoteOperation("list")
	return notes, nil
}

// CreateNote stores a new note owned by the caller. Any owner supplied by
// the client is discarded.
func (svc *NotesService) CreateNote(ctx context.Context, caller model.Identity, title, content string) (*model.Note, error) {
	title, err := validateTitle(title)
	if err != nil {
		return nil, err
	}
	if err := validateContent(content); err != nil {
		return nil, err
	}

	note := &model.Note{
		ID:      uuid.New().String(),
		UserID:  caller.UserID,
		Title:   title,
		Content: content,
	}

	if err := svc.NotesRepo.CreateNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to create note: %w", err)
	}

	utils.TrackNoteOperation("create")
	return note, nil
}

func (svc *NotesService) GetNote(ctx context.Context, caller model.Identity, noteID string) (*model.Note, error) {
	note, err := svc.NotesRepo.GetNote(ctx, noteID, caller.UserID)
	if err != nil {
		return nil, err
	}
	utils.TrackNoteOperation("get")
	return note, nil
}

// UpdateNote applies a full or partial update; nil fields stay untouched.
// A note owned by someone else surfaces as not-found, same as GetNote.
func (svc *NotesService) UpdateNote(ctx context.Context, caller model.Identity, noteID string, title, content *string) (*model.Note, error) {
	fields := bson.M{}

	if title != nil {
		validated, err := validateTitle(*title)
		if err != nil {
			return nil, err
		}
		fields["title"] = validated
	}

	if content != nil {
		if err := validateContent(*content); err != nil {
			return nil, err
		}
		fields["content"] = *content
	}

	if len(fields) == 0 {
		return nil, newValidationError("no fields to update")
	}

	note, err := svc.NotesRepo.UpdateNote(ctx, noteID, caller.UserID, fields)
	if err != nil {
		return nil, err
	}

	utils.TrackNoteOperation("update")
	return note, nil
}

func (svc *NotesService) DeleteNote(ctx context.Context, caller model.Identity, noteID string) error {
	if err := svc.NotesRepo.DeleteNote(ctx, noteID, caller.UserID); err != nil {
		return err
	}
	utils.TrackNoteOperation("delete")
	return nil
}
