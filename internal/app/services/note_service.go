package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/yigit/edutube/internal/app/auth"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/app/models/dto"
	"github.com/yigit/edutube/internal/app/repositories"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	"github.com/yigit/edutube/internal/pkg/events"
	"github.com/yigit/edutube/internal/pkg/filestorage"
)

// NoteService defines the interface for note operations
type NoteService interface {
	Create(ctx context.Context, principal *auth.Principal, req *dto.UploadRequest, file *multipart.FileHeader) (*dto.NoteResponse, error)
	List(ctx context.Context, principal *auth.Principal) ([]*dto.NoteResponse, error)
	// Get returns the note and counts the fetch as one download
	Get(ctx context.Context, principal *auth.Principal, id string) (*dto.NoteResponse, error)
}

type noteServiceImpl struct {
	noteRepo  repositories.NoteRepository
	storage   filestorage.FileStorage
	publisher *events.Publisher
	rules     uploadRules
	logger    zerolog.Logger
}

// NewNoteService creates a new NoteService
func NewNoteService(
	noteRepo repositories.NoteRepository,
	storage filestorage.FileStorage,
	publisher *events.Publisher,
	maxUploadSize int64,
	logger zerolog.Logger,
) NoteService {
	return &noteServiceImpl{
		noteRepo:  noteRepo,
		storage:   storage,
		publisher: publisher,
		rules:     uploadRules{maxSize: maxUploadSize},
		logger:    logger,
	}
}

func (s *noteServiceImpl) Create(ctx context.Context, principal *auth.Principal, req *dto.UploadRequest, file *multipart.FileHeader) (*dto.NoteResponse, error) {
	if err := principal.Can(auth.ActionCreate, auth.ResourceNote); err != nil {
		return nil, err
	}
	contentType, err := s.rules.check(req, file)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.Save(file, NoteDir)
	if err != nil {
		return nil, fmt.Errorf("error storing note file: %w", err)
	}

	note := &models.Note{
		Title:            req.Title,
		Description:      req.Description,
		Filename:         stored.Filename,
		OriginalFilename: stored.OriginalFilename,
		FileURL:          stored.URL,
		FileSize:         stored.Size,
		ContentType:      contentType,
		UploaderID:       principal.UserID,
		UploaderName:     principal.Name,
		IsActive:         true,
	}
	if err := s.noteRepo.Create(ctx, note); err != nil {
		if delErr := s.storage.Delete(stored.Path); delErr != nil {
			s.logger.Error().Err(delErr).Str("path", stored.Path).Msg("Failed to remove orphaned note file")
		}
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	s.logger.Info().Str("noteID", note.ID).Str("uploaderID", principal.UserID).Msg("Note uploaded")
	s.publisher.Publish(ctx, events.NoteUploaded, map[string]interface{}{
		"noteId":     note.ID,
		"title":      note.Title,
		"uploaderId": note.UploaderID,
	})

	return dto.NewNoteResponse(note), nil
}

func (s *noteServiceImpl) List(ctx context.Context, principal *auth.Principal) ([]*dto.NoteResponse, error) {
	if err := principal.Can(auth.ActionRead, auth.ResourceNote); err != nil {
		return nil, err
	}

	notes, err := s.noteRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return dto.NewNoteResponses(notes), nil
}

func (s *noteServiceImpl) Get(ctx context.Context, principal *auth.Principal, id string) (*dto.NoteResponse, error) {
	if err := principal.Can(auth.ActionRead, auth.ResourceNote); err != nil {
		return nil, err
	}

	note, err := s.noteRepo.IncrementDownloads(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoteNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrNoteNotFound, "note not found")
		}
		return nil, fmt.Errorf("error getting note: %w", err)
	}
	return dto.NewNoteResponse(note), nil
}
