package assets

import (
	"context"
	"io"
	"start-page/app/server/constants"
)

type Remote struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
}

type cancelBody struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (b *cancelBody) Close() error {
	defer b.cancel()
	return b.ReadCloser.Close()
}

// Fetch 供图片代理使用，超时覆盖整个读取过程，调用方必须关闭 Body
func (p *Pipeline) Fetch(ctx context.Context, rawURL string) (*Remote, error) {
	target, err := parseRemoteURL(rawURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ProxyTimeout)

	res, err := p.get(ctx, target, "image/*,*/*;q=0.8")
	if err != nil {
		cancel()
		return nil, err
	}

	contentType := res.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	return &Remote{
		Body:          &cancelBody{ReadCloser: res.Body, cancel: cancel},
		ContentType:   contentType,
		ContentLength: res.ContentLength,
	}, nil
}
