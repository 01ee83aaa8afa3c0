// Package s3 provides the Amazon S3 backend for objpath. Importing it
// registers the "s3" scheme:
//
//	p, err := objpath.Resolve("s3://bucket/key?acl=private")
//
// A path carries its bucket, key and merged options; the S3 client is
// constructed lazily on the first remote call and cached for the life of the
// instance. Construction options, URI query parameters and OBJPATH_S3_*
// environment defaults layer in that order of precedence.
package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gobeaver/objpath"
)

// Scheme is the URI scheme this backend serves.
const Scheme = "s3"

const (
	// multipartThreshold is the staged size above which uploads switch from
	// a single PutObject to a multi-part upload.
	multipartThreshold int64 = 5 * 1024 * 1024

	// uploadPartSize is the size of each multi-part upload segment.
	uploadPartSize int64 = 5 * 1024 * 1024

	// serverCopyLimit is the S3 CopyObject single-request ceiling. Sources
	// at or over it must go through the streaming fallback.
	serverCopyLimit int64 = 5 * 1024 * 1024 * 1024

	// defaultPageSize is the backend's listing page maximum.
	defaultPageSize int32 = 1000
)

// RemotePath is an objpath.Path rooted at one S3 object location.
// The bucket and key are fixed at construction; the value is immutable apart
// from the lazily cached client binding. One instance is safe for sequential
// reuse; concurrent use of a single instance needs external synchronization.
type RemotePath struct {
	bucket string
	key    string
	params *objpath.Params

	cfg        ClientConfig
	pipeline   objpath.Pipeline
	stagingDir string
	pageSize   int32

	clientOnce sync.Once
	client     API
	clientErr  error
}

// ClientConfig holds what is needed to build the S3 client: either explicit
// construction parameters, or a pre-built client used as-is.
type ClientConfig struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	ForcePathStyle  bool

	// Client, when set, is used directly and nothing is constructed.
	Client API
}

// Option configures a RemotePath at construction.
type Option func(*RemotePath)

// WithClient supplies a pre-built client handle, used as-is.
func WithClient(c API) Option {
	return func(p *RemotePath) {
		p.cfg.Client = c
	}
}

// WithRegion sets the region for client construction.
func WithRegion(region string) Option {
	return func(p *RemotePath) {
		p.cfg.Region = region
	}
}

// WithCredentials sets static credentials for client construction.
func WithCredentials(accessKeyID, secretAccessKey string) Option {
	return func(p *RemotePath) {
		p.cfg.AccessKeyID = accessKeyID
		p.cfg.SecretAccessKey = secretAccessKey
	}
}

// WithEndpoint sets a custom endpoint (MinIO, Ceph, LocalStack and friends).
func WithEndpoint(endpoint string) Option {
	return func(p *RemotePath) {
		p.cfg.Endpoint = endpoint
	}
}

// WithPathStyle forces path-style bucket addressing.
func WithPathStyle() Option {
	return func(p *RemotePath) {
		p.cfg.ForcePathStyle = true
	}
}

// WithParam attaches one free-form option to the path. Options supplied this
// way win over URI query parameters with the same key.
func WithParam(key, value string) Option {
	return func(p *RemotePath) {
		p.params.Set(key, value)
	}
}

// WithParams attaches a set of free-form options, with the same precedence
// as WithParam.
func WithParams(params *objpath.Params) Option {
	return func(p *RemotePath) {
		for _, k := range params.Keys() {
			v, _ := params.Get(k)
			p.params.Set(k, v)
		}
	}
}

// WithPipeline sets the conversion pipeline used by Open and Create.
// The default is objpath.Identity.
func WithPipeline(pl objpath.Pipeline) Option {
	return func(p *RemotePath) {
		p.pipeline = pl
	}
}

// WithStagingDir sets the directory staged transfer files are created in.
func WithStagingDir(dir string) Option {
	return func(p *RemotePath) {
		p.stagingDir = dir
	}
}

// New constructs a RemotePath from an s3:// URI. The URI host is the bucket,
// the path (with its leading slash stripped) is the key, and query
// parameters merge into the path's options underneath any options supplied
// via WithParam or WithParams.
func New(rawURI string, opts ...Option) (*RemotePath, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, &objpath.AddressError{URI: rawURI, Reason: err.Error()}
	}
	if u.Scheme != Scheme {
		return nil, &objpath.AddressError{URI: rawURI, Reason: fmt.Sprintf("scheme %q is not %q", u.Scheme, Scheme)}
	}
	if u.Host == "" {
		return nil, &objpath.AddressError{URI: rawURI, Reason: "missing bucket"}
	}

	query, err := objpath.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, &objpath.AddressError{URI: rawURI, Reason: "bad query: " + err.Error()}
	}

	p := &RemotePath{
		bucket:   u.Host,
		key:      strings.TrimPrefix(u.Path, "/"),
		params:   objpath.NewParams(),
		pipeline: objpath.Identity(),
		pageSize: defaultPageSize,
	}

	// Query parameters first, explicit options on top: explicit wins.
	explicit := &RemotePath{params: objpath.NewParams()}
	for _, opt := range opts {
		opt(explicit)
	}
	p.params = query.Merge(explicit.params)
	p.cfg = explicit.cfg
	if explicit.pipeline != nil {
		p.pipeline = explicit.pipeline
	}
	p.stagingDir = explicit.stagingDir

	return p, nil
}

// Bucket returns the bucket this path addresses.
func (p *RemotePath) Bucket() string {
	return p.bucket
}

// Key returns the object key this path addresses.
func (p *RemotePath) Key() string {
	return p.key
}

// Params returns a copy of the path's merged options.
func (p *RemotePath) Params() *objpath.Params {
	return p.params.Clone()
}

// URI returns the canonical s3:// URI, including any options.
func (p *RemotePath) URI() string {
	uri := fmt.Sprintf("%s://%s/%s", Scheme, p.bucket, p.key)
	if q := p.params.Encode(); q != "" {
		uri += "?" + q
	}
	return uri
}

// withKey derives a sibling path for another key in the same bucket. The
// child inherits the options and, when the parent's client binding is
// already resolved, that client as a pre-built handle.
func (p *RemotePath) withKey(key string) *RemotePath {
	child := &RemotePath{
		bucket:     p.bucket,
		key:        key,
		params:     p.params.Clone(),
		cfg:        p.cfg,
		pipeline:   p.pipeline,
		stagingDir: p.stagingDir,
		pageSize:   p.pageSize,
	}
	if p.client != nil {
		child.cfg.Client = p.client
	}
	return child
}

// api returns the cached client handle, constructing it on first use.
// Construction is guarded so it happens at most once per instance.
func (p *RemotePath) api(ctx context.Context) (API, error) {
	p.clientOnce.Do(func() {
		p.client, p.clientErr = p.buildClient(ctx)
	})
	return p.client, p.clientErr
}

// buildClient resolves the client from, in order: a pre-built handle,
// explicit construction options, path params, then environment defaults.
func (p *RemotePath) buildClient(ctx context.Context) (API, error) {
	if p.cfg.Client != nil {
		return p.cfg.Client, nil
	}

	cfg := p.cfg
	if v, ok := p.params.Get("region"); ok && cfg.Region == "" {
		cfg.Region = v
	}
	if v, ok := p.params.Get("endpoint"); ok && cfg.Endpoint == "" {
		cfg.Endpoint = v
	}
	if v, ok := p.params.Get("access-key-id"); ok && cfg.AccessKeyID == "" {
		cfg.AccessKeyID = v
	}
	if v, ok := p.params.Get("secret-access-key"); ok && cfg.SecretAccessKey == "" {
		cfg.SecretAccessKey = v
	}
	if v, ok := p.params.Get("path-style"); ok && v == "true" {
		cfg.ForcePathStyle = true
	}

	env, err := objpath.GetConfig()
	if err != nil {
		return nil, err
	}
	if cfg.Region == "" {
		cfg.Region = env.S3Region
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = env.S3Endpoint
	}
	if cfg.AccessKeyID == "" && cfg.SecretAccessKey == "" {
		cfg.AccessKeyID = env.S3AccessKeyID
		cfg.SecretAccessKey = env.S3SecretAccessKey
	}
	cfg.ForcePathStyle = cfg.ForcePathStyle || env.S3ForcePathStyle
	if p.stagingDir == "" {
		p.stagingDir = env.StagingDir
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, err
	}

	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)
	}

	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.ForcePathStyle {
			o.UsePathStyle = true
		}
	}), nil
}

// ============================================================================
// Metadata Operations
// ============================================================================

// Exists reports whether the object is present. A missing object is false,
// never an error.
func (p *RemotePath) Exists(ctx context.Context) (bool, error) {
	_, err := p.head(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, objpath.NewPathError("exists", p.URI(), err)
	}
	return true, nil
}

// Size returns the object's byte length. The boolean is false when the
// object does not exist; that is not an error.
func (p *RemotePath) Size(ctx context.Context) (int64, bool, error) {
	resp, err := p.head(ctx)
	if err != nil {
		if isNotFound(err) {
			return 0, false, nil
		}
		return 0, false, objpath.NewPathError("size", p.URI(), err)
	}
	return aws.ToInt64(resp.ContentLength), true, nil
}

// Stat returns the object's store-native metadata, or ErrNotExist.
func (p *RemotePath) Stat(ctx context.Context) (*objpath.ObjectMeta, error) {
	resp, err := p.head(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, objpath.NewPathError("stat", p.URI(), objpath.ErrNotExist)
		}
		return nil, objpath.NewPathError("stat", p.URI(), err)
	}

	meta := &objpath.ObjectMeta{
		Key:          p.key,
		Size:         aws.ToInt64(resp.ContentLength),
		ETag:         aws.ToString(resp.ETag),
		LastModified: aws.ToTime(resp.LastModified),
		StorageClass: string(resp.StorageClass),
	}
	if len(resp.Metadata) > 0 {
		meta.Metadata = make(map[string]string, len(resp.Metadata))
		for k, v := range resp.Metadata {
			meta.Metadata[k] = v
		}
	}
	return meta, nil
}

// Delete removes the object. Deleting a missing object succeeds: the
// operation is idempotent.
func (p *RemotePath) Delete(ctx context.Context) error {
	client, err := p.api(ctx)
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
	if err != nil && !isNotFound(err) {
		return objpath.NewPathError("delete", p.URI(), err)
	}
	return nil
}

// Mkpath is a no-op returning the path itself: the backend has no directory
// entities to create.
func (p *RemotePath) Mkpath(ctx context.Context) (objpath.Path, error) {
	return p, nil
}

func (p *RemotePath) head(ctx context.Context) (*s3.HeadObjectOutput, error) {
	client, err := p.api(ctx)
	if err != nil {
		return nil, err
	}
	return client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(p.bucket),
		Key:    aws.String(p.key),
	})
}

// isNotFound reports whether err is the backend's not-found response.
func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	var notFound *types.NotFound
	return errors.As(err, &nsk) || errors.As(err, &notFound)
}

// Ensure RemotePath implements the objpath interfaces
var (
	_ objpath.Path            = (*RemotePath)(nil)
	_ objpath.CanTransferFile = (*RemotePath)(nil)
	_ objpath.CanChecksum     = (*RemotePath)(nil)
)
