package s3

import (
	"context"
	"net/url"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gobeaver/objpath"
)

// CopyTo copies this object to dst. With conversion disabled, a same-backend
// target and a source under the server-side size limit, the copy is one
// CopyObject call: bytes never transit the local process and the copy may
// span buckets. Everything else falls back to the generic streaming copy.
func (p *RemotePath) CopyTo(ctx context.Context, dst objpath.Path, opts ...objpath.CopyOption) error {
	o := objpath.NewCopyOptions(opts...)
	if o.Convert {
		return objpath.StreamCopy(ctx, p, dst)
	}

	target, ok := dst.(*RemotePath)
	if !ok {
		return objpath.StreamCopy(ctx, p, dst)
	}

	size, exists, err := p.Size(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return objpath.NewPathError("copy", p.URI(), objpath.ErrNotExist)
	}
	if size >= serverCopyLimit {
		return objpath.StreamCopy(ctx, p, dst)
	}

	return p.serverCopy(ctx, target, o.Extra)
}

// CopyFrom copies src into this path, with the same conversion and
// server-side rules as CopyTo.
func (p *RemotePath) CopyFrom(ctx context.Context, src objpath.Path, opts ...objpath.CopyOption) error {
	if source, ok := src.(*RemotePath); ok {
		return source.CopyTo(ctx, p, opts...)
	}

	// A foreign source always streams, converted or not.
	return objpath.StreamCopy(ctx, src, p)
}

// MoveTo copies this object to dst without conversion, then deletes the
// source. The two steps are not atomic: a failure in between leaves the
// object at both locations, and callers retrying must tolerate
// at-least-once semantics.
func (p *RemotePath) MoveTo(ctx context.Context, dst objpath.Path) error {
	if err := p.CopyTo(ctx, dst, objpath.WithConvert(false)); err != nil {
		return err
	}
	return p.Delete(ctx)
}

// serverCopy issues the single remote-to-remote copy call, carrying this
// path's options plus any per-call extras.
func (p *RemotePath) serverCopy(ctx context.Context, target *RemotePath, extra *objpath.Params) error {
	client, err := target.api(ctx)
	if err != nil {
		return err
	}

	input := &s3.CopyObjectInput{
		Bucket:     aws.String(target.bucket),
		Key:        aws.String(target.key),
		CopySource: aws.String(url.PathEscape(p.bucket + "/" + p.key)),
	}
	applyCopy(input, p.params.Merge(extra))

	if _, err := client.CopyObject(ctx, input); err != nil {
		if isNotFound(err) {
			return objpath.NewPathError("copy", p.URI(), objpath.ErrNotExist)
		}
		return objpath.NewPathError("copy", p.URI(), err)
	}
	return nil
}
