package completion

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
	"resty.dev/v3"
)

const (
	channelBufferSize    = 100
	errorBufferSize      = 10
	dataPrefix           = "data: "
	doneMarker           = "[DONE]"
	newlineChar          = "\n"
	scannerInitialBuffer = 12 * 1024        // 12KB
	scannerMaxBuffer     = 10 * 1024 * 1024 // 10MB
)

// BeforeDoneCallback runs after the upstream stream finished but before the
// [DONE] marker is written, with the accumulated assistant text.
type BeforeDoneCallback func(reqCtx *gin.Context, fullText string) error

type streamChoice struct {
	Delta struct {
		Content string `json:"content"`
	} `json:"delta"`
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	http    *resty.Client
	baseURL string
	apiKey  string
	timeout time.Duration
	log     zerolog.Logger
}

// NewClient wires a completion client against the given base URL.
func NewClient(httpClient *resty.Client, baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		apiKey:  apiKey,
		timeout: timeout,
		log:     log.With().Str("component", "completion-client").Logger(),
	}
}

// CreateChatCompletion performs a blocking, non-streaming completion.
func (c *Client) CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	request.Stream = false

	var respBody openai.ChatCompletionResponse
	resp, err := c.prepareRequest(ctx).
		SetBody(request).
		SetResult(&respBody).
		Post(c.endpoint("/chat/completions"))
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(resp, "chat completion request failed")
	}
	if len(respBody.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}
	return &respBody, nil
}

// StreamToContext proxies the upstream SSE stream onto the gin response
// writer while accumulating the assistant text. The upstream connection is
// established before any response headers are written, so connect failures
// leave the caller free to send a different response. The beforeDone
// callback runs before the final [DONE] marker is forwarded, so callers can
// append their own terminal events. The accumulated text is returned either
// way.
func (c *Client) StreamToContext(reqCtx *gin.Context, request openai.ChatCompletionRequest, beforeDone BeforeDoneCallback) (string, error) {
	request.Stream = true

	ctx, cancel := context.WithTimeout(reqCtx.Request.Context(), c.timeout)
	defer cancel()

	resp, err := c.doStreamingRequest(ctx, request)
	if err != nil {
		return "", err
	}

	c.setupSSEHeaders(reqCtx)

	dataChan := make(chan string, channelBufferSize)
	errChan := make(chan error, errorBufferSize)

	var wg sync.WaitGroup
	wg.Add(1)
	go c.streamResponseToChannel(ctx, resp, dataChan, errChan, &wg)

	var contentBuilder strings.Builder
	streamingComplete := false

	for !streamingComplete {
		select {
		case line, ok := <-dataChan:
			if !ok {
				streamingComplete = true
				break
			}

			if data, found := strings.CutPrefix(line, dataPrefix); found {
				if data == doneMarker {
					if beforeDone != nil {
						if err := beforeDone(reqCtx, contentBuilder.String()); err != nil {
							c.log.Warn().Err(err).Msg("beforeDone callback failed")
						}
					}
					if err := c.writeSSELine(reqCtx, line); err != nil {
						cancel()
						wg.Wait()
						return contentBuilder.String(), fmt.Errorf("write SSE line: %w", err)
					}
					streamingComplete = true
					cancel()
					break
				}

				if content, ok := c.parseStreamChunk(data); ok {
					contentBuilder.WriteString(content)
				}
			}

			if err := c.writeSSELine(reqCtx, line); err != nil {
				cancel()
				wg.Wait()
				return contentBuilder.String(), fmt.Errorf("write SSE line: %w", err)
			}

		case err, ok := <-errChan:
			if ok && err != nil {
				cancel()
				wg.Wait()
				return contentBuilder.String(), fmt.Errorf("streaming: %w", err)
			}

		case <-ctx.Done():
			wg.Wait()
			return contentBuilder.String(), fmt.Errorf("streaming cancelled: %w", ctx.Err())
		}
	}

	cancel()
	wg.Wait()

	return contentBuilder.String(), nil
}

func (c *Client) setupSSEHeaders(reqCtx *gin.Context) {
	reqCtx.Header("Content-Type", "text/event-stream")
	reqCtx.Header("Cache-Control", "no-cache")
	reqCtx.Header("Connection", "keep-alive")
	reqCtx.Header("Access-Control-Allow-Origin", "*")
	reqCtx.Header("Access-Control-Allow-Headers", "Cache-Control")
	reqCtx.Header("Transfer-Encoding", "chunked")
	reqCtx.Writer.WriteHeaderNow()
}

func (c *Client) prepareRequest(ctx context.Context) *resty.Request {
	req := c.http.R().SetContext(ctx)
	req.SetHeader("Content-Type", "application/json")
	if strings.TrimSpace(c.apiKey) != "" {
		req.SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey))
	}
	return req
}

func (c *Client) endpoint(path string) string {
	if c.baseURL == "" {
		return path
	}
	return c.baseURL + path
}

func (c *Client) errorFromResponse(resp *resty.Response, message string) error {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return fmt.Errorf("%s: status %d", message, statusCode(resp))
	}
	defer resp.RawResponse.Body.Close()
	body, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil {
		return fmt.Errorf("%s: status %d", message, statusCode(resp))
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Errorf("%s: status %d", message, statusCode(resp))
	}
	return fmt.Errorf("%s: status %d: %s", message, statusCode(resp), trimmed)
}

func (c *Client) doStreamingRequest(ctx context.Context, request openai.ChatCompletionRequest) (*resty.Response, error) {
	req := c.prepareRequest(ctx).
		SetBody(request).
		SetDoNotParseResponse(true)

	if req.Header.Get("Accept-Encoding") == "" {
		req.SetHeader("Accept-Encoding", "identity")
	}

	resp, err := req.Post(c.endpoint("/chat/completions"))
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(resp, "streaming request failed")
	}
	if resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return nil, fmt.Errorf("streaming request failed: empty response body")
	}
	return resp, nil
}

func (c *Client) streamResponseToChannel(ctx context.Context, resp *resty.Response, dataChan chan<- string, errChan chan<- error, wg *sync.WaitGroup) {
	defer wg.Done()
	defer close(dataChan)

	defer func() {
		if closeErr := resp.RawResponse.Body.Close(); closeErr != nil {
			c.log.Error().Err(closeErr).Msg("unable to close response body")
		}
	}()

	scanner := bufio.NewScanner(resp.RawResponse.Body)
	scanner.Buffer(make([]byte, 0, scannerInitialBuffer), scannerMaxBuffer)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		select {
		case dataChan <- scanner.Text():
		case <-ctx.Done():
			return
		}
	}

	if err := scanner.Err(); err != nil {
		c.sendAsyncError(errChan, err)
	}
}

func (c *Client) writeSSELine(reqCtx *gin.Context, line string) error {
	if _, err := reqCtx.Writer.Write([]byte(line + newlineChar)); err != nil {
		return err
	}
	reqCtx.Writer.Flush()
	return nil
}

func (c *Client) parseStreamChunk(data string) (string, bool) {
	var streamData struct {
		Choices []streamChoice `json:"choices"`
	}
	if err := json.Unmarshal([]byte(data), &streamData); err != nil {
		c.log.Error().Err(err).Str("data", data).Msg("failed to parse stream chunk JSON")
		return "", false
	}

	var content strings.Builder
	for _, choice := range streamData.Choices {
		content.WriteString(choice.Delta.Content)
	}
	return content.String(), true
}

func (c *Client) sendAsyncError(errChan chan<- error, err error) {
	if err == nil {
		return
	}
	select {
	case errChan <- err:
	default:
	}
}

func statusCode(resp *resty.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode()
}
