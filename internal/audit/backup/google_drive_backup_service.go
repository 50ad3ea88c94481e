package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
)

const (
	rootBackupsFolderName = "healthtrack-audit-backup"
	folderMimeType        = "application/vnd.google-apps.folder"
	entriesFileChunkSize  = 500 // number of audit entries in one backup file
)

type entriesSource interface {
	ListSince(ctx context.Context, since *time.Time) ([]audit.Entry, error)
}

type GoogleDriveBackupService struct {
	source          entriesSource
	service         *drive.Service
	backupsFolderId string
	shareWith       string
}

// NewGoogleDriveBackupService finds (or creates) the backups folder on the drive of the
// service account. When shareWith is set, created files are shared with that address.
func NewGoogleDriveBackupService(
	ctx context.Context,
	credentialsJson []byte,
	source entriesSource,
	shareWith string,
) (*GoogleDriveBackupService, error) {
	// https://github.com/googleapis/google-api-go-client/blob/master/drive/v3/drive-gen.go
	driveService, err := drive.NewService(ctx, option.WithCredentialsJSON(credentialsJson))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve drive client: %w", err)
	}

	s := &GoogleDriveBackupService{
		source:    source,
		service:   driveService,
		shareWith: shareWith,
	}

	rootFolderQuery := fmt.Sprintf("mimeType = '%s' and trashed = false and name = '%s'", folderMimeType, rootBackupsFolderName)
	backupFolders, err := driveService.
		Files.List().
		Q(rootFolderQuery).
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve files: %w", err)
	}

	switch len(backupFolders.Files) {
	case 0:
		log.Println("root backups folder not found, recreating ...")
		if s.backupsFolderId, err = s.createRootBackupsFolder(ctx); err != nil {
			return nil, fmt.Errorf("failed to create root backups folder: %w", err)
		}
		log.Printf("new root backups folder created: %s", s.backupsFolderId)
	case 1:
		s.backupsFolderId = backupFolders.Files[0].Id
		log.Printf("root backups folder found: %s", s.backupsFolderId)
	default:
		s.backupsFolderId = backupFolders.Files[0].Id
		log.Warnf("found %d root backups folders, will take the first one: %s", len(backupFolders.Files), s.backupsFolderId)
	}

	return s, nil
}

// DoBackup uploads all entries created since the newest existing backup file.
// It returns the number of entries saved.
func (s *GoogleDriveBackupService) DoBackup(ctx context.Context, baseTime time.Time) (_ int, err error) {
	ctx, span := tracing.GlobalAuditBackupTracer.Start(ctx, "audit.backup")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	existingFiles, err := s.backupFiles(ctx)
	if err != nil {
		return 0, fmt.Errorf("list backup files: %w", err)
	}

	var since *time.Time
	baseFileName := "initial-" + baseTime.Format("2006-01-02")
	if len(existingFiles) > 0 {
		lastCreatedAt := LastCreatedAt(existingFiles)
		since = &lastCreatedAt
		baseFileName = NextBackupFileName("audit-"+baseTime.Format("2006-01-02"), existingFiles)
	}

	entries, err := s.source.ListSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("get audit entries: %w", err)
	}
	span.SetAttributes(attribute.Int("entries", len(entries)))

	if len(entries) == 0 {
		log.Println("no new audit entries to backup, done")
		return 0, nil
	}

	log.Printf("backing up %d audit entries into %s ...", len(entries), baseFileName)
	if err := s.backupEntries(ctx, entries, baseFileName); err != nil {
		return 0, fmt.Errorf("backup entries: %w", err)
	}

	return len(entries), nil
}

// Reinit removes the backups folder with all of its files and starts over.
func (s *GoogleDriveBackupService) Reinit(ctx context.Context, baseTime time.Time) (int, error) {
	log.Println("audit backup reinit starting ...")

	if err := s.service.Files.Delete(s.backupsFolderId).Context(ctx).Do(); err != nil {
		return 0, fmt.Errorf("delete backups folder: %w", err)
	}

	backupsFolderId, err := s.createRootBackupsFolder(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to create root backups folder: %w", err)
	}
	s.backupsFolderId = backupsFolderId
	log.Printf("new root backups folder created: %s", backupsFolderId)

	return s.DoBackup(ctx, baseTime)
}

func (s *GoogleDriveBackupService) backupEntries(ctx context.Context, entries []audit.Entry, baseFileName string) error {
	for i, chunk := range Chunk(entries, entriesFileChunkSize) {
		fileName := fmt.Sprintf("%s_%d.json", baseFileName, i+1)

		chunkJson, err := json.Marshal(chunk)
		if err != nil {
			return fmt.Errorf("%s: marshal entries: %w", fileName, err)
		}

		fileMeta := &drive.File{
			Name:     fileName,
			MimeType: "application/json",
			Parents:  []string{s.backupsFolderId},
		}
		created, err := s.service.
			Files.Create(fileMeta).
			Fields("id, parents").
			Media(bytes.NewReader(chunkJson)).
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("%s: create backup file: %w", fileName, err)
		}

		if err := s.share(ctx, created.Id); err != nil {
			return fmt.Errorf("%s: share backup file: %w", fileName, err)
		}

		log.Printf("%s: backup file with %d entries saved: %s", fileName, len(chunk), created.Id)
	}

	return nil
}

func (s *GoogleDriveBackupService) createRootBackupsFolder(ctx context.Context) (string, error) {
	folder, err := s.service.
		Files.Create(&drive.File{
			Name:     rootBackupsFolderName,
			MimeType: folderMimeType,
		}).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}

	if err := s.share(ctx, folder.Id); err != nil {
		return folder.Id, fmt.Errorf("share root backups folder: %w", err)
	}

	return folder.Id, nil
}

func (s *GoogleDriveBackupService) share(ctx context.Context, fileId string) error {
	if s.shareWith == "" {
		return nil
	}

	permission, err := s.service.Permissions.
		Create(fileId, &drive.Permission{
			EmailAddress: s.shareWith,
			Type:         "user",
			Role:         "reader",
		}).
		Context(ctx).
		Do()
	if err != nil {
		return err
	}

	log.Debugf("permission %s created for %s", permission.Id, fileId)
	return nil
}

func (s *GoogleDriveBackupService) backupFiles(ctx context.Context) ([]*drive.File, error) {
	query := fmt.Sprintf("'%s' in parents and mimeType != '%s' and trashed = false", s.backupsFolderId, folderMimeType)
	backups, err := s.service.
		Files.List().
		Q(query).
		Fields("files(id, name, createdTime)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}

	return backups.Files, nil
}

// Chunk splits entries into consecutive slices of at most size elements.
func Chunk(entries []audit.Entry, size int) [][]audit.Entry {
	if size <= 0 {
		return nil
	}
	var chunks [][]audit.Entry
	for from := 0; from < len(entries); from += size {
		to := min(from+size, len(entries))
		chunks = append(chunks, entries[from:to])
	}
	return chunks
}

// LastCreatedAt is the creation time of the newest file; unparsable times are skipped.
func LastCreatedAt(files []*drive.File) time.Time {
	var last time.Time
	for _, file := range files {
		createdAt, err := time.Parse(time.RFC3339, file.CreatedTime)
		if err != nil {
			log.Printf("error parsing created at for file %s: %s", file.Name, err)
			continue
		}
		if createdAt.After(last) {
			last = createdAt
		}
	}
	return last
}

// NextBackupFileName returns base, or base with a counter suffix, so that the first
// chunk file does not clash with an existing one.
func NextBackupFileName(base string, existing []*drive.File) string {
	taken := make(map[string]bool, len(existing))
	for _, file := range existing {
		taken[file.Name] = true
	}

	name := base
	for counter := 2; taken[name+"_1.json"]; counter++ {
		name = fmt.Sprintf("%s-%d", base, counter)
	}
	return name
}
