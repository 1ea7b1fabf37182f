package usecase

import (
	"context"
	"io"
	"strings"

	"dukkan/internal/adapter/rest"
	"dukkan/pkg/errors"
	"dukkan/pkg/feedback"
	"dukkan/pkg/utils"
)

// UploadUseCase pushes images to the storage collaborator through the
// backend. The client never touches storage directly; it gets a URL back.
type UploadUseCase struct {
	client *rest.Client
	notify feedback.Notifier
}

func NewUploadUseCase(client *rest.Client, notify feedback.Notifier) *UploadUseCase {
	if notify == nil {
		notify = feedback.Discard{}
	}
	return &UploadUseCase{client: client, notify: notify}
}

func (uc *UploadUseCase) UploadImage(ctx context.Context, filename string, file io.Reader, folder string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", errors.Validation("filename is required")
	}
	if folder == "" {
		folder = "products"
	}

	var result struct {
		URL string `json:"url"`
	}
	err := uc.client.Upload(ctx, "/upload/image", "file", filename, file, map[string]string{"folder": folder}, &result)
	if err != nil {
		uc.notify.Error(errors.Message(err))
		return "", err
	}

	uc.notify.Success("Image uploaded")
	return result.URL, nil
}

// BroadcastInput is the admin notification blast form.
type BroadcastInput struct {
	Title    string `json:"title" validate:"required"`
	Message  string `json:"message" validate:"required"`
	Audience string `json:"audience" validate:"required,oneof=all buyers admins"`
}

type BroadcastUseCase struct {
	client *rest.Client
	notify feedback.Notifier
}

func NewBroadcastUseCase(client *rest.Client, notify feedback.Notifier) *BroadcastUseCase {
	if notify == nil {
		notify = feedback.Discard{}
	}
	return &BroadcastUseCase{client: client, notify: notify}
}

func (uc *BroadcastUseCase) Send(ctx context.Context, input BroadcastInput) error {
	if err := utils.CheckDraft(input); err != nil {
		return err
	}
	if err := uc.client.Post(ctx, "/admin/notifications/broadcast", input, nil); err != nil {
		uc.notify.Error(errors.Message(err))
		return err
	}
	uc.notify.Success("Broadcast sent")
	return nil
}
