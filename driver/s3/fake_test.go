package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// fakeObject is one stored object with the metadata the fake tracks.
type fakeObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
	modified    time.Time
}

// fakeAPI is an in-memory API implementation. Objects live in a flat
// "bucket/key" map; listings page through sorted keys honoring MaxKeys and
// the continuation cursor, like the real backend.
type fakeAPI struct {
	objects map[string]*fakeObject

	// In-flight multipart uploads, by upload ID.
	uploads map[string]*fakeUpload
	nextID  int

	headCalls           int
	getCalls            int
	putCalls            int
	deleteCalls         int
	copyCalls           int
	listCalls           int
	createUploadCalls   int
	uploadPartCalls     int
	completeUploadCalls int
	abortUploadCalls    int

	// Error injection.
	putErr        error
	uploadPartErr map[int32]error
	completeErr   error
	copyErr       error
	listErr       error

	// lastPrefix records the Prefix of the most recent listing request.
	lastPrefix string

	// headSize, when set, overrides the reported ContentLength. Lets a
	// test claim a huge object without storing one.
	headSize int64
}

type fakeUpload struct {
	bucket string
	key    string
	parts  map[int32][]byte
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		objects: make(map[string]*fakeObject),
		uploads: make(map[string]*fakeUpload),
	}
}

func (f *fakeAPI) put(bucket, key string, data []byte) {
	f.objects[bucket+"/"+key] = &fakeObject{
		data:     append([]byte(nil), data...),
		modified: time.Now(),
	}
}

func (f *fakeAPI) get(bucket, key string) ([]byte, bool) {
	obj, ok := f.objects[bucket+"/"+key]
	if !ok {
		return nil, false
	}
	return obj.data, true
}

func (f *fakeAPI) HeadObject(ctx context.Context, in *awss3.HeadObjectInput, opts ...func(*awss3.Options)) (*awss3.HeadObjectOutput, error) {
	f.headCalls++
	obj, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	size := int64(len(obj.data))
	if f.headSize != 0 {
		size = f.headSize
	}
	out := &awss3.HeadObjectOutput{
		ContentLength: aws.Int64(size),
		ETag:          aws.String(fmt.Sprintf("%q", len(obj.data))),
		LastModified:  aws.Time(obj.modified),
	}
	if obj.contentType != "" {
		out.ContentType = aws.String(obj.contentType)
	}
	if len(obj.metadata) > 0 {
		out.Metadata = obj.metadata
	}
	return out, nil
}

func (f *fakeAPI) GetObject(ctx context.Context, in *awss3.GetObjectInput, opts ...func(*awss3.Options)) (*awss3.GetObjectOutput, error) {
	f.getCalls++
	obj, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &awss3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(obj.data)),
		ContentLength: aws.Int64(int64(len(obj.data))),
	}, nil
}

func (f *fakeAPI) PutObject(ctx context.Context, in *awss3.PutObjectInput, opts ...func(*awss3.Options)) (*awss3.PutObjectOutput, error) {
	f.putCalls++
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	obj := &fakeObject{
		data:        data,
		contentType: aws.ToString(in.ContentType),
		modified:    time.Now(),
	}
	if len(in.Metadata) > 0 {
		obj.metadata = in.Metadata
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = obj
	return &awss3.PutObjectOutput{}, nil
}

func (f *fakeAPI) DeleteObject(ctx context.Context, in *awss3.DeleteObjectInput, opts ...func(*awss3.Options)) (*awss3.DeleteObjectOutput, error) {
	f.deleteCalls++
	delete(f.objects, aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key))
	return &awss3.DeleteObjectOutput{}, nil
}

func (f *fakeAPI) CopyObject(ctx context.Context, in *awss3.CopyObjectInput, opts ...func(*awss3.Options)) (*awss3.CopyObjectOutput, error) {
	f.copyCalls++
	if f.copyErr != nil {
		return nil, f.copyErr
	}
	src, err := unescapeCopySource(aws.ToString(in.CopySource))
	if err != nil {
		return nil, err
	}
	obj, ok := f.objects[src]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	dup := &fakeObject{
		data:        append([]byte(nil), obj.data...),
		contentType: obj.contentType,
		metadata:    obj.metadata,
		modified:    time.Now(),
	}
	if in.MetadataDirective == types.MetadataDirectiveReplace {
		dup.metadata = in.Metadata
	}
	f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = dup
	return &awss3.CopyObjectOutput{}, nil
}

func (f *fakeAPI) ListObjectsV2(ctx context.Context, in *awss3.ListObjectsV2Input, opts ...func(*awss3.Options)) (*awss3.ListObjectsV2Output, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}

	bucket := aws.ToString(in.Bucket)
	prefix := aws.ToString(in.Prefix)
	f.lastPrefix = prefix

	keys := make([]string, 0, len(f.objects))
	for stored := range f.objects {
		b, key, _ := strings.Cut(stored, "/")
		if b != bucket || !strings.HasPrefix(key, prefix) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	// Resume after the cursor, which is the last key of the prior page.
	if token := aws.ToString(in.ContinuationToken); token != "" {
		i := sort.SearchStrings(keys, token)
		if i < len(keys) && keys[i] == token {
			i++
		}
		keys = keys[i:]
	}

	max := int(aws.ToInt32(in.MaxKeys))
	if max <= 0 {
		max = 1000
	}

	out := &awss3.ListObjectsV2Output{}
	for i, key := range keys {
		if i == max {
			out.NextContinuationToken = aws.String(keys[i-1])
			out.IsTruncated = aws.Bool(true)
			break
		}
		obj := f.objects[bucket+"/"+key]
		out.Contents = append(out.Contents, types.Object{
			Key:          aws.String(key),
			Size:         aws.Int64(int64(len(obj.data))),
			ETag:         aws.String(fmt.Sprintf("%q", len(obj.data))),
			LastModified: aws.Time(obj.modified),
		})
	}
	return out, nil
}

func (f *fakeAPI) CreateMultipartUpload(ctx context.Context, in *awss3.CreateMultipartUploadInput, opts ...func(*awss3.Options)) (*awss3.CreateMultipartUploadOutput, error) {
	f.createUploadCalls++
	f.nextID++
	id := fmt.Sprintf("upload-%d", f.nextID)
	f.uploads[id] = &fakeUpload{
		bucket: aws.ToString(in.Bucket),
		key:    aws.ToString(in.Key),
		parts:  make(map[int32][]byte),
	}
	return &awss3.CreateMultipartUploadOutput{UploadId: aws.String(id)}, nil
}

func (f *fakeAPI) UploadPart(ctx context.Context, in *awss3.UploadPartInput, opts ...func(*awss3.Options)) (*awss3.UploadPartOutput, error) {
	f.uploadPartCalls++
	partNumber := aws.ToInt32(in.PartNumber)
	if err := f.uploadPartErr[partNumber]; err != nil {
		return nil, err
	}
	up, ok := f.uploads[aws.ToString(in.UploadId)]
	if !ok {
		return nil, fmt.Errorf("no such upload: %s", aws.ToString(in.UploadId))
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	up.parts[partNumber] = data
	return &awss3.UploadPartOutput{
		ETag: aws.String(fmt.Sprintf("\"part-%d\"", partNumber)),
	}, nil
}

func (f *fakeAPI) CompleteMultipartUpload(ctx context.Context, in *awss3.CompleteMultipartUploadInput, opts ...func(*awss3.Options)) (*awss3.CompleteMultipartUploadOutput, error) {
	f.completeUploadCalls++
	if f.completeErr != nil {
		return nil, f.completeErr
	}
	id := aws.ToString(in.UploadId)
	up, ok := f.uploads[id]
	if !ok {
		return nil, fmt.Errorf("no such upload: %s", id)
	}

	var assembled []byte
	for _, part := range in.MultipartUpload.Parts {
		data, ok := up.parts[aws.ToInt32(part.PartNumber)]
		if !ok {
			return nil, fmt.Errorf("missing part %d", aws.ToInt32(part.PartNumber))
		}
		assembled = append(assembled, data...)
	}

	f.put(up.bucket, up.key, assembled)
	delete(f.uploads, id)
	return &awss3.CompleteMultipartUploadOutput{}, nil
}

func (f *fakeAPI) AbortMultipartUpload(ctx context.Context, in *awss3.AbortMultipartUploadInput, opts ...func(*awss3.Options)) (*awss3.AbortMultipartUploadOutput, error) {
	f.abortUploadCalls++
	delete(f.uploads, aws.ToString(in.UploadId))
	return &awss3.AbortMultipartUploadOutput{}, nil
}

// unescapeCopySource reverses the path-escaping applied to CopySource.
func unescapeCopySource(s string) (string, error) {
	return url.PathUnescape(s)
}

var _ API = (*fakeAPI)(nil)
