package core

import (
	"context"
	"encoding/base64"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"pkt.systems/jirasoap/internal/logx"
	"pkt.systems/jirasoap/schema"
)

// AddAttachmentsToIssue attaches files to an issue. fileNames and data are
// parallel arrays.
func (t *Tracker) AddAttachmentsToIssue(ctx context.Context, token, issueKey string, fileNames []string, data [][]byte) (bool, error) {
	return t.addAttachments(ctx, token, issueKey, fileNames, data)
}

// AddBase64EncodedAttachmentsToIssue is AddAttachmentsToIssue with the file
// contents base64 encoded.
func (t *Tracker) AddBase64EncodedAttachmentsToIssue(ctx context.Context, token, issueKey string, fileNames, base64Data []string) (bool, error) {
	if _, _, err := t.authenticate(ctx, token); err != nil {
		return false, err
	}
	data := make([][]byte, len(base64Data))
	for i, encoded := range base64Data {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
		if err != nil {
			return false, schema.ValidationFault("Attachment %d is not valid base64.", i)
		}
		data[i] = decoded
	}
	return t.addAttachments(ctx, token, issueKey, fileNames, data)
}

func (t *Tracker) addAttachments(ctx context.Context, token, issueKey string, fileNames []string, data [][]byte) (bool, error) {
	caller, log, err := t.authenticate(ctx, token)
	if err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	issue, project, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return false, err
	}
	if !t.cfg.AllowAttachments {
		return false, schema.ValidationFault("Attachments are disabled.")
	}
	if err := t.requirePermission(caller, project, PermCreateAttachment); err != nil {
		return false, err
	}
	if len(fileNames) == 0 {
		return false, schema.ValidationFault("No files to attach.")
	}
	if len(fileNames) != len(data) {
		return false, schema.ValidationFault("Got %d file names for %d files.", len(fileNames), len(data))
	}
	names := make([]string, len(fileNames))
	for i, name := range fileNames {
		name = strings.TrimSpace(name)
		if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return false, schema.ValidationFault("File name %q is not valid.", fileNames[i])
		}
		names[i] = name
	}

	now := t.timestamp()
	var stored []*attachmentRecord
	for i, name := range names {
		rec := &attachmentRecord{
			ID:       t.st.nextID(),
			IssueID:  issue.ID,
			Author:   caller,
			Filename: name,
			Mimetype: detectMimetype(name, data[i]),
			Size:     int64(len(data[i])),
			Created:  now,
		}
		if err := t.attachments.Put(ctx, rec.ID, data[i]); err != nil {
			for _, done := range stored {
				_ = t.attachments.Delete(ctx, done.ID)
			}
			log.Error("attachment store failed", "issue", issue.Key, "file", name, "err", err)
			return false, schema.RemoteFault("could not store attachment %s", name)
		}
		stored = append(stored, rec)
	}
	for _, rec := range stored {
		t.st.Attachments[rec.ID] = rec
	}
	issue.Updated = now
	logx.WithIssue(log, issue.Key).Info("attachments added", "count", len(stored))
	t.publish(schema.TrackerEvent{Type: schema.EventIssueAttached, Actor: caller, Project: project.Key, Issue: issue.Key, Subject: strings.Join(names, ",")})
	return true, nil
}

// GetAttachmentsFromIssue lists the attachments of an issue.
func (t *Tracker) GetAttachmentsFromIssue(ctx context.Context, token, issueKey string) ([]schema.RemoteAttachment, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	issue, _, err := t.visibleIssue(caller, strings.TrimSpace(issueKey))
	if err != nil {
		return nil, err
	}
	out := []schema.RemoteAttachment{}
	for _, rec := range t.st.issueAttachments(issue.ID) {
		out = append(out, schema.RemoteAttachment{
			ID:       formatID(rec.ID),
			Author:   rec.Author,
			Filename: rec.Filename,
			Filesize: rec.Size,
			Mimetype: rec.Mimetype,
			Created:  timePtr(rec.Created),
		})
	}
	return out, nil
}

// AttachmentContent returns the stored content of an attachment the caller
// can see. It backs the download endpoint and is not part of the remote
// call catalogue.
func (t *Tracker) AttachmentContent(ctx context.Context, token string, id int64) (string, []byte, error) {
	caller, _, err := t.authenticate(ctx, token)
	if err != nil {
		return "", nil, err
	}
	t.mu.RLock()
	rec := t.st.Attachments[id]
	if rec == nil {
		t.mu.RUnlock()
		return "", nil, schema.RemoteFault("Attachment %d does not exist.", id)
	}
	if _, _, err := t.visibleIssueByID(caller, rec.IssueID); err != nil {
		t.mu.RUnlock()
		return "", nil, err
	}
	mimetype := rec.Mimetype
	t.mu.RUnlock()
	data, err := t.attachments.Get(ctx, id)
	if err != nil {
		return "", nil, schema.RemoteFault("could not read attachment %d", id)
	}
	return mimetype, data, nil
}

func detectMimetype(name string, data []byte) string {
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return byExt
	}
	return http.DetectContentType(data)
}
