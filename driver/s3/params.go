package s3

import (
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/gobeaver/objpath"
)

// Option keys the backend recognizes and maps onto request fields. Anything
// prefixed "meta-" becomes user metadata on the object; keys used for client
// construction (region, endpoint, credentials) are consumed by buildClient
// and skipped here.
const (
	paramACL                = "acl"
	paramStorageClass       = "storage-class"
	paramContentType        = "content-type"
	paramCacheControl       = "cache-control"
	paramContentDisposition = "content-disposition"
	paramContentEncoding    = "content-encoding"
	paramSSE                = "sse"
	paramSSEKMSKeyID        = "sse-kms-key-id"
	metaPrefix              = "meta-"
)

var clientParams = map[string]bool{
	"region":            true,
	"endpoint":          true,
	"access-key-id":     true,
	"secret-access-key": true,
	"path-style":        true,
}

// objectMetadata collects the meta-* options into the user metadata map.
func objectMetadata(params *objpath.Params) map[string]string {
	var meta map[string]string
	for _, k := range params.Keys() {
		if !strings.HasPrefix(k, metaPrefix) {
			continue
		}
		if meta == nil {
			meta = make(map[string]string)
		}
		v, _ := params.Get(k)
		meta[strings.TrimPrefix(k, metaPrefix)] = v
	}
	return meta
}

func applyPut(in *s3.PutObjectInput, params *objpath.Params) {
	if v, ok := params.Get(paramACL); ok {
		in.ACL = types.ObjectCannedACL(v)
	}
	if v, ok := params.Get(paramStorageClass); ok {
		in.StorageClass = types.StorageClass(v)
	}
	if v, ok := params.Get(paramContentType); ok {
		in.ContentType = aws.String(v)
	}
	if v, ok := params.Get(paramCacheControl); ok {
		in.CacheControl = aws.String(v)
	}
	if v, ok := params.Get(paramContentDisposition); ok {
		in.ContentDisposition = aws.String(v)
	}
	if v, ok := params.Get(paramContentEncoding); ok {
		in.ContentEncoding = aws.String(v)
	}
	if v, ok := params.Get(paramSSE); ok {
		in.ServerSideEncryption = types.ServerSideEncryption(v)
	}
	if v, ok := params.Get(paramSSEKMSKeyID); ok {
		in.SSEKMSKeyId = aws.String(v)
	}
	if meta := objectMetadata(params); meta != nil {
		in.Metadata = meta
	}
}

func applyCreateMultipart(in *s3.CreateMultipartUploadInput, params *objpath.Params) {
	if v, ok := params.Get(paramACL); ok {
		in.ACL = types.ObjectCannedACL(v)
	}
	if v, ok := params.Get(paramStorageClass); ok {
		in.StorageClass = types.StorageClass(v)
	}
	if v, ok := params.Get(paramContentType); ok {
		in.ContentType = aws.String(v)
	}
	if v, ok := params.Get(paramCacheControl); ok {
		in.CacheControl = aws.String(v)
	}
	if v, ok := params.Get(paramContentDisposition); ok {
		in.ContentDisposition = aws.String(v)
	}
	if v, ok := params.Get(paramContentEncoding); ok {
		in.ContentEncoding = aws.String(v)
	}
	if v, ok := params.Get(paramSSE); ok {
		in.ServerSideEncryption = types.ServerSideEncryption(v)
	}
	if v, ok := params.Get(paramSSEKMSKeyID); ok {
		in.SSEKMSKeyId = aws.String(v)
	}
	if meta := objectMetadata(params); meta != nil {
		in.Metadata = meta
	}
}

func applyCopy(in *s3.CopyObjectInput, params *objpath.Params) {
	if v, ok := params.Get(paramACL); ok {
		in.ACL = types.ObjectCannedACL(v)
	}
	if v, ok := params.Get(paramStorageClass); ok {
		in.StorageClass = types.StorageClass(v)
	}
	if v, ok := params.Get(paramCacheControl); ok {
		in.CacheControl = aws.String(v)
	}
	if v, ok := params.Get(paramSSE); ok {
		in.ServerSideEncryption = types.ServerSideEncryption(v)
	}
	if v, ok := params.Get(paramSSEKMSKeyID); ok {
		in.SSEKMSKeyId = aws.String(v)
	}
	if meta := objectMetadata(params); meta != nil {
		in.Metadata = meta
		in.MetadataDirective = types.MetadataDirectiveReplace
	}
}
