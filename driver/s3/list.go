package s3

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gobeaver/objpath"
)

// EachChild enumerates objects under this path whose keys match pattern,
// calling fn with each resolved child path and its raw listing metadata.
//
// A wildcard-free pattern short-circuits to one existence probe: if the
// exact key exists it is yielded alone, otherwise nothing is, and no listing
// call is made. Otherwise the listing is scoped by the literal prefix before
// the pattern's first wildcard and paged through with the backend's
// continuation cursor; the compiled matcher is the sole correctness filter.
//
// The store has no directory boundaries, so every listing is effectively
// recursive. Entries arrive in the backend's native key order; keys ending
// in the separator are pseudo-directory markers and are skipped unless
// IncludeDirectories is given. Returning an error from fn stops the
// enumeration, including further page fetches.
func (p *RemotePath) EachChild(ctx context.Context, pattern string, fn func(objpath.Child) error, opts ...objpath.ListOption) error {
	lo := objpath.NewListOptions(opts...)
	spec, err := objpath.NewMatchSpec(p.key, pattern, lo)
	if err != nil {
		return err
	}

	if spec.Exact() {
		return p.exactChild(ctx, spec, fn)
	}

	client, err := p.api(ctx)
	if err != nil {
		return err
	}

	input := &s3.ListObjectsV2Input{
		Bucket:  aws.String(p.bucket),
		Prefix:  aws.String(spec.Prefix()),
		MaxKeys: aws.Int32(p.pageSize),
	}

	for {
		page, err := client.ListObjectsV2(ctx, input)
		if err != nil {
			return objpath.NewPathError("list", p.URI(), err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if strings.HasSuffix(key, "/") && !lo.Directories {
				continue
			}
			if !spec.Match(key) {
				continue
			}

			child := objpath.Child{
				Path: p.withKey(key),
				Meta: objpath.ObjectMeta{
					Key:          key,
					Size:         aws.ToInt64(obj.Size),
					ETag:         aws.ToString(obj.ETag),
					LastModified: aws.ToTime(obj.LastModified),
					StorageClass: string(obj.StorageClass),
				},
			}
			if err := fn(child); err != nil {
				return err
			}
		}

		if page.NextContinuationToken == nil {
			return nil
		}
		input.ContinuationToken = page.NextContinuationToken
	}
}

// exactChild probes the single key a wildcard-free pattern can name.
func (p *RemotePath) exactChild(ctx context.Context, spec *objpath.MatchSpec, fn func(objpath.Child) error) error {
	child := p.withKey(spec.ExactKey())

	meta, err := child.Stat(ctx)
	if err != nil {
		if objpath.IsNotExist(err) {
			return nil
		}
		return err
	}

	return fn(objpath.Child{Path: child, Meta: *meta})
}
