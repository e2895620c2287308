// Package signer builds the signed outbound request the gateway sends to
// the private storage backend. The backend trusts the SigV4 signature, not
// the caller: nothing identifying the caller is ever forwarded.
package signer

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/prn-tf/doorman/internal/authz"
	"github.com/prn-tf/doorman/internal/config"
)

// emptyPayloadHash is the SHA-256 of an empty body. GET and HEAD requests
// carry no payload, so the signature always binds this constant.
const emptyPayloadHash = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// signingService is the service name expected by S3-compatible backends.
const signingService = "s3"

// forwardedHeaders is the allowlist of inbound headers carried to the
// backend. Only conditional/partial delivery headers are safe to forward;
// Authorization, Cookie and anything else identifying the caller must not
// reach the backend.
var forwardedHeaders = []string{
	"Range",
	"If-None-Match",
	"If-Modified-Since",
}

// Signer builds and signs one outbound request. It is constructed per
// request on purpose: the credential pair and region are tenant
// configuration, and a cached signer would pin the first tenant's material.
type Signer struct {
	storage config.StorageConfig
	sigv4   *v4.Signer
	now     func() time.Time
}

// New creates a Signer for the given storage configuration.
func New(storage config.StorageConfig) *Signer {
	return &Signer{
		storage: storage,
		sigv4: v4.NewSigner(func(o *v4.SignerOptions) {
			// The object key is escaped once while building the URL; the
			// backend signs against that exact path.
			o.DisableURIPathEscaping = true
		}),
		now: time.Now,
	}
}

// Sign constructs the outbound request for the given object key, forwarding
// only the safe header allowlist from the inbound request, and signs it.
// method must be GET or HEAD.
func (s *Signer) Sign(ctx context.Context, method string, key authz.ObjectKey, inbound *http.Request) (*http.Request, error) {
	target := s.objectURL(key)

	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return nil, err
	}

	for _, name := range forwardedHeaders {
		if v := inbound.Header.Get(name); v != "" {
			req.Header.Set(name, v)
		}
	}

	provider := credentials.NewStaticCredentialsProvider(
		s.storage.AccessKeyID,
		s.storage.SecretAccessKey,
		"",
	)
	creds, err := provider.Retrieve(ctx)
	if err != nil {
		return nil, err
	}

	region := s.storage.Region
	if region == "" {
		region = "auto"
	}

	if err := s.sigv4.SignHTTP(ctx, creds, req, emptyPayloadHash, signingService, region, s.now().UTC()); err != nil {
		return nil, err
	}

	return req, nil
}

// objectURL returns the path-style URL for the object:
// https://<endpoint>/<bucket>/<key>, with each key segment escaped once.
func (s *Signer) objectURL(key authz.ObjectKey) string {
	segments := strings.Split(key.String(), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return s.storage.EndpointURL() + "/" + s.storage.Bucket + "/" + strings.Join(segments, "/")
}
