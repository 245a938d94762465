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

// VideoService defines the interface for video operations
type VideoService interface {
	Create(ctx context.Context, principal *auth.Principal, req *dto.UploadRequest, file *multipart.FileHeader) (*dto.VideoResponse, error)
	List(ctx context.Context, principal *auth.Principal) ([]*dto.VideoResponse, error)
	// Get returns the video and counts the fetch as one view
	Get(ctx context.Context, principal *auth.Principal, id string) (*dto.VideoResponse, error)
}

type videoServiceImpl struct {
	videoRepo repositories.VideoRepository
	storage   filestorage.FileStorage
	publisher *events.Publisher
	rules     uploadRules
	logger    zerolog.Logger
}

// NewVideoService creates a new VideoService
func NewVideoService(
	videoRepo repositories.VideoRepository,
	storage filestorage.FileStorage,
	publisher *events.Publisher,
	maxUploadSize int64,
	logger zerolog.Logger,
) VideoService {
	return &videoServiceImpl{
		videoRepo: videoRepo,
		storage:   storage,
		publisher: publisher,
		rules:     uploadRules{maxSize: maxUploadSize, typePrefix: "video/", typeMessage: "only video files can be uploaded"},
		logger:    logger,
	}
}

func (s *videoServiceImpl) Create(ctx context.Context, principal *auth.Principal, req *dto.UploadRequest, file *multipart.FileHeader) (*dto.VideoResponse, error) {
	if err := principal.Can(auth.ActionCreate, auth.ResourceVideo); err != nil {
		return nil, err
	}
	contentType, err := s.rules.check(req, file)
	if err != nil {
		return nil, err
	}

	stored, err := s.storage.Save(file, VideoDir)
	if err != nil {
		return nil, fmt.Errorf("error storing video file: %w", err)
	}

	video := &models.Video{
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
	if err := s.videoRepo.Create(ctx, video); err != nil {
		if delErr := s.storage.Delete(stored.Path); delErr != nil {
			s.logger.Error().Err(delErr).Str("path", stored.Path).Msg("Failed to remove orphaned video file")
		}
		return nil, fmt.Errorf("error creating video: %w", err)
	}

	s.logger.Info().Str("videoID", video.ID).Str("uploaderID", principal.UserID).Msg("Video uploaded")
	s.publisher.Publish(ctx, events.VideoUploaded, map[string]interface{}{
		"videoId":    video.ID,
		"title":      video.Title,
		"uploaderId": video.UploaderID,
	})

	return dto.NewVideoResponse(video), nil
}

func (s *videoServiceImpl) List(ctx context.Context, principal *auth.Principal) ([]*dto.VideoResponse, error) {
	if err := principal.Can(auth.ActionRead, auth.ResourceVideo); err != nil {
		return nil, err
	}

	videos, err := s.videoRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing videos: %w", err)
	}
	return dto.NewVideoResponses(videos), nil
}

func (s *videoServiceImpl) Get(ctx context.Context, principal *auth.Principal, id string) (*dto.VideoResponse, error) {
	if err := principal.Can(auth.ActionRead, auth.ResourceVideo); err != nil {
		return nil, err
	}

	video, err := s.videoRepo.IncrementViews(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrVideoNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.ErrVideoNotFound, "video not found")
		}
		return nil, fmt.Errorf("error getting video: %w", err)
	}
	return dto.NewVideoResponse(video), nil
}
