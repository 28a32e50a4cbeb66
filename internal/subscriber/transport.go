package subscriber

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"nhooyr.io/websocket"
)

// Conn is one open transport connection.
type Conn interface {
	// ReadMessage blocks until the next message or a transport failure.
	ReadMessage(ctx context.Context) ([]byte, error)

	// Close tears the connection down.
	Close() error
}

// Transport opens connections to the realtime endpoint. The websocket
// implementation is the default; tests substitute their own.
type Transport interface {
	Dial(ctx context.Context, endpoint string) (Conn, error)
}

// NewWebsocketTransport returns the production websocket transport.
func NewWebsocketTransport() Transport {
	return websocketTransport{}
}

type websocketTransport struct{}

func (websocketTransport) Dial(ctx context.Context, endpoint string) (Conn, error) {
	conn, resp, err := websocket.Dial(ctx, endpoint, nil)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}
	return &websocketConn{conn: conn}, nil
}

type websocketConn struct {
	conn *websocket.Conn
}

func (c *websocketConn) ReadMessage(ctx context.Context) ([]byte, error) {
	_, data, err := c.conn.Read(ctx)
	return data, err
}

func (c *websocketConn) Close() error {
	return c.conn.Close(websocket.StatusNormalClosure, "client closing")
}

// DeriveEndpoint maps the configured base API URL onto the realtime websocket
// endpoint: the trailing /api/v1 segment is stripped, /realtime appended, and
// the scheme switched to its websocket variant.
func DeriveEndpoint(baseURL string) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	switch parsed.Scheme {
	case "http":
		parsed.Scheme = "ws"
	case "https":
		parsed.Scheme = "wss"
	default:
		return "", errors.New("base URL scheme must be http or https")
	}

	path := strings.TrimSuffix(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/api/v1")
	parsed.Path = path + "/realtime"
	parsed.RawQuery = ""
	parsed.Fragment = ""

	return parsed.String(), nil
}

// closeDetails extracts {code, reason, wasClean} from a transport read error.
// A close frame from the peer yields its status code; anything else (network
// failure, cancelled read) reports code zero and an unclean close.
func closeDetails(err error) (int, string, bool) {
	var closeErr websocket.CloseError
	if errors.As(err, &closeErr) {
		clean := closeErr.Code == websocket.StatusNormalClosure || closeErr.Code == websocket.StatusGoingAway
		return int(closeErr.Code), closeErr.Reason, clean
	}
	if err == nil {
		return 0, "", false
	}
	return 0, err.Error(), false
}
