package s3

import (
	"bytes"
	"context"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gobeaver/objpath"
)

// The backend only transfers whole objects: pull into a sink or push from a
// source. Streaming reads and writes are bridged through a scoped local
// staging file, which is removed on every exit path.

// Open downloads the full object into a staging file and returns a reader
// over it, wrapped by the conversion pipeline. Closing the reader removes
// the staging file.
func (p *RemotePath) Open(ctx context.Context) (io.ReadCloser, error) {
	client, err := p.api(ctx)
	if err != nil {
		return nil, err
	}

	tmp, err := objpath.NewScopedFile(p.stagingDir, "objpath-s3-read-*")
	if err != nil {
		return nil, objpath.NewPathError("open", p.URI(), err)
	}

	if err := p.download(ctx, client, tmp.File); err != nil {
		tmp.Close()
		return nil, err
	}

	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, objpath.NewPathError("open", p.URI(), err)
	}

	r, err := p.pipeline.Reader(tmp)
	if err != nil {
		tmp.Close()
		return nil, objpath.NewPathError("open", p.URI(), err)
	}

	return &stagedReader{r: r, tmp: tmp}, nil
}

// stagedReader reads converted content off the staging file and releases it
// on Close.
type stagedReader struct {
	r   io.Reader
	tmp *objpath.ScopedFile
}

func (s *stagedReader) Read(b []byte) (int, error) {
	return s.r.Read(b)
}

func (s *stagedReader) Close() error {
	if c, ok := s.r.(io.Closer); ok && s.r != io.Reader(s.tmp) {
		_ = c.Close()
	}
	return s.tmp.Close()
}

// Create opens a staged write scope. Bytes pass through the conversion
// pipeline into a staging file; the remote object is uploaded only when the
// scope closes cleanly, so a partially written object is never visible.
// The upload performed by Close runs under the context given here.
func (p *RemotePath) Create(ctx context.Context) (objpath.WriteScope, error) {
	tmp, err := objpath.NewScopedFile(p.stagingDir, "objpath-s3-write-*")
	if err != nil {
		return nil, objpath.NewPathError("create", p.URI(), err)
	}

	w, err := p.pipeline.Writer(tmp)
	if err != nil {
		tmp.Close()
		return nil, objpath.NewPathError("create", p.URI(), err)
	}

	return &writeScope{ctx: ctx, p: p, w: w, tmp: tmp}, nil
}

type writeScope struct {
	ctx  context.Context
	p    *RemotePath
	w    io.Writer
	tmp  *objpath.ScopedFile
	done bool
}

func (s *writeScope) Write(b []byte) (int, error) {
	if s.done {
		return 0, objpath.ErrClosed
	}
	return s.w.Write(b)
}

// Close flushes the pipeline, uploads the staged file's complete contents
// and removes the staging file.
func (s *writeScope) Close() error {
	if s.done {
		return objpath.ErrClosed
	}
	s.done = true
	defer s.tmp.Close()

	// Flush the pipeline writer; the pipeline contract keeps the staging
	// file itself open.
	if c, ok := s.w.(io.Closer); ok && s.w != io.Writer(s.tmp) {
		if err := c.Close(); err != nil {
			return objpath.NewPathError("write", s.p.URI(), err)
		}
	}

	return s.p.uploadFile(s.ctx, s.tmp.File)
}

// Abort discards the staged bytes. Nothing is uploaded and the remote
// object, if any, is untouched.
func (s *writeScope) Abort() error {
	if s.done {
		return objpath.ErrClosed
	}
	s.done = true
	return s.tmp.Close()
}

// ============================================================================
// Direct Transfer Shortcuts
// ============================================================================

// Upload sends the complete contents of a local file straight to the remote
// key, bypassing the conversion pipeline.
func (p *RemotePath) Upload(ctx context.Context, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return objpath.NewPathError("upload", p.URI(), err)
	}
	defer f.Close()
	return p.uploadFile(ctx, f)
}

// Download fetches the complete object into a local file, bypassing the
// conversion pipeline.
func (p *RemotePath) Download(ctx context.Context, localPath string) error {
	client, err := p.api(ctx)
	if err != nil {
		return err
	}

	f, err := os.Create(localPath)
	if err != nil {
		return objpath.NewPathError("download", p.URI(), err)
	}
	defer f.Close()

	return p.download(ctx, client, f)
}

func (p *RemotePath) download(ctx context.Context, client API, dst *os.File) error {
	resp, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
	if err != nil {
		if isNotFound(err) {
			return objpath.NewPathError("read", p.URI(), objpath.ErrNotExist)
		}
		return objpath.NewPathError("read", p.URI(), err)
	}
	defer resp.Body.Close()

	if _, err := io.Copy(dst, resp.Body); err != nil {
		return objpath.NewPathError("read", p.URI(), err)
	}
	return nil
}

// ============================================================================
// Upload Strategy
// ============================================================================

// uploadFile pushes a complete local file to the remote key, choosing a
// single PutObject or a multi-part upload by size. Small objects are cheaper
// as one request; large ones avoid single-request size and time limits.
func (p *RemotePath) uploadFile(ctx context.Context, f *os.File) error {
	client, err := p.api(ctx)
	if err != nil {
		return err
	}

	info, err := f.Stat()
	if err != nil {
		return objpath.NewPathError("write", p.URI(), err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return objpath.NewPathError("write", p.URI(), err)
	}

	if info.Size() > multipartThreshold {
		return p.uploadMultipart(ctx, client, f)
	}
	return p.uploadWhole(ctx, client, f, info.Size())
}

func (p *RemotePath) uploadWhole(ctx context.Context, client API, body io.Reader, size int64) error {
	input := &s3.PutObjectInput{
		Bucket:        aws.String(p.bucket),
		Key:           aws.String(p.key),
		Body:          body,
		ContentLength: aws.Int64(size),
	}
	applyPut(input, p.params)
	if input.ContentType == nil {
		input.ContentType = aws.String(objpath.GuessContentType(p.key))
	}

	if _, err := client.PutObject(ctx, input); err != nil {
		return objpath.NewPathError("write", p.URI(), err)
	}
	return nil
}

// uploadMultipart splits the staged file into fixed-size parts, uploads them
// and assembles the object server-side. Any failure aborts the upload and
// surfaces a MultipartError naming the failed segments.
func (p *RemotePath) uploadMultipart(ctx context.Context, client API, f *os.File) error {
	input := &s3.CreateMultipartUploadInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	}
	applyCreateMultipart(input, p.params)
	if input.ContentType == nil {
		input.ContentType = aws.String(objpath.GuessContentType(p.key))
	}

	created, err := client.CreateMultipartUpload(ctx, input)
	if err != nil {
		return objpath.NewPathError("write", p.URI(), err)
	}
	uploadID := aws.ToString(created.UploadId)

	abort := func(failed *objpath.PartError) error {
		// Best effort: the upload is already failed, and S3 reaps
		// incomplete uploads via lifecycle rules.
		_, _ = client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
			Bucket:   aws.String(p.bucket),
			Key:      aws.String(p.key),
			UploadId: aws.String(uploadID),
		})
		return objpath.NewPathError("write", p.URI(), &objpath.MultipartError{
			UploadID: uploadID,
			Failed:   []*objpath.PartError{failed},
		})
	}

	var completed []types.CompletedPart
	buf := make([]byte, uploadPartSize)
	for partNumber := int32(1); ; partNumber++ {
		n, readErr := io.ReadFull(f, buf)
		if readErr != nil && readErr != io.EOF && readErr != io.ErrUnexpectedEOF {
			return abort(&objpath.PartError{PartNumber: partNumber, Err: readErr})
		}

		if n > 0 {
			resp, err := client.UploadPart(ctx, &s3.UploadPartInput{
				Bucket:     aws.String(p.bucket),
				Key:        aws.String(p.key),
				UploadId:   aws.String(uploadID),
				PartNumber: aws.Int32(partNumber),
				Body:       bytes.NewReader(buf[:n]),
			})
			if err != nil {
				return abort(&objpath.PartError{PartNumber: partNumber, Err: err})
			}
			completed = append(completed, types.CompletedPart{
				ETag:       resp.ETag,
				PartNumber: aws.Int32(partNumber),
			})
		}

		if readErr == io.EOF || readErr == io.ErrUnexpectedEOF {
			break
		}
	}

	_, err = client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(p.bucket),
		Key:      aws.String(p.key),
		UploadId: aws.String(uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	if err != nil {
		// Part number 0 marks the assembly call itself.
		return abort(&objpath.PartError{PartNumber: 0, Err: err})
	}
	return nil
}

// Checksum implements objpath.CanChecksum by streaming the object through a
// hasher.
func (p *RemotePath) Checksum(ctx context.Context, algorithm objpath.ChecksumAlgorithm) (string, error) {
	r, err := p.Open(ctx)
	if err != nil {
		return "", err
	}
	defer r.Close()

	sum, err := objpath.CalculateChecksum(r, algorithm)
	if err != nil {
		return "", objpath.NewPathError("checksum", p.URI(), err)
	}
	return sum, nil
}
