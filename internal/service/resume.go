package service

import (
	"context"
	"mime/multipart"

	"github.com/SamarthBhogre/InternLink/internal/model"
	"github.com/SamarthBhogre/InternLink/internal/store"
	"github.com/SamarthBhogre/InternLink/internal/upload"
	"go.uber.org/zap"
)

// ResumeService stores one resume per email: the file on disk, the
// metadata as a record. Re-uploading replaces the record but leaves the
// previous file behind; pruning has never been implemented and clients
// depend on old URLs staying alive.
type ResumeService struct {
	resumes  store.ResumeStore
	uploader *upload.Storage
	log      *zap.Logger
}

func NewResumeService(resumes store.ResumeStore, uploader *upload.Storage, log *zap.Logger) *ResumeService {
	return &ResumeService{resumes: resumes, uploader: uploader, log: log}
}

// UploadFile stores a multipart resume upload and upserts the metadata
// record. Returns the public URL.
func (s *ResumeService) UploadFile(ctx context.Context, email string, file *multipart.FileHeader) (string, error) {
	url, stored, err := s.uploader.SaveMultipart(file, "resume")
	if err != nil {
		return "", err
	}
	resume := &model.Resume{
		Email:          email,
		ResumeFilename: file.Filename,
		StoredFilename: stored,
		ResumeURL:      url,
		UploadedAt:     nowISO(),
	}
	if err := s.resumes.Upsert(ctx, resume); err != nil {
		return "", err
	}
	s.log.Info("Resume uploaded",
		zap.String("email", email),
		zap.String("stored_filename", stored))
	return url, nil
}

// UploadDataURL stores a base64 data-URL resume payload and upserts the
// metadata record. Returns the public URL.
func (s *ResumeService) UploadDataURL(ctx context.Context, email, dataURL string) (string, error) {
	url, stored, err := s.uploader.SaveDataURL(dataURL, "resume")
	if err != nil {
		return "", err
	}
	resume := &model.Resume{
		Email:          email,
		ResumeFilename: stored,
		StoredFilename: stored,
		ResumeURL:      url,
		UploadedAt:     nowISO(),
	}
	if err := s.resumes.Upsert(ctx, resume); err != nil {
		return "", err
	}
	s.log.Info("Resume uploaded",
		zap.String("email", email),
		zap.String("stored_filename", stored))
	return url, nil
}

// GetByEmail returns the resume metadata for an email.
func (s *ResumeService) GetByEmail(ctx context.Context, email string) (*model.Resume, error) {
	return s.resumes.FindByEmail(ctx, email)
}

// Delete removes the stored file (best-effort, a missing file is fine)
// and then the metadata record.
func (s *ResumeService) Delete(ctx context.Context, email string) error {
	resume, err := s.resumes.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	stored := model.FirstNonEmpty(resume.StoredFilename, upload.StoredNameFromURL(resume.ResumeURL))
	if stored != "" {
		if err := s.uploader.Remove(stored); err != nil {
			s.log.Debug("Resume file removal failed",
				zap.String("stored_filename", stored),
				zap.Error(err))
		}
	}
	if err := s.resumes.DeleteByEmail(ctx, email); err != nil {
		return err
	}
	s.log.Info("Resume deleted", zap.String("email", email))
	return nil
}
