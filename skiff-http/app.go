package skiff_http

import (
	"bufio"
	"net"

	"github.com/google/uuid"
	"github.com/labstack/gommon/log"
)

// ReadBufferSize is how many bytes the driver reads per connection. A
// request that does not fit into one read is not accumulated further.
const ReadBufferSize = 1024

// Application is the configuration surface of a server: where to listen,
// whether to wrap the listener in TLS, the route registrations, the user
// state, and an optional fallback for route misses. Construct with
// NewApplication, register routes, then Start.
type Application[State any] struct {
	// Address is the host:port the listener binds, passed verbatim to
	// the socket bind.
	Address string `mapstructure:"address"`

	// CertificatePath optionally points at a single PEM file holding a
	// certificate chain and exactly one PKCS#8-encoded private key. When
	// set, the listener is TLS-wrapped.
	CertificatePath string `mapstructure:"certificate_path"`

	// ConfigFile optionally points at a TOML, YAML, or JSON file whose
	// keys are decoded onto this struct before serving.
	ConfigFile string `mapstructure:"-"`

	// SilentMode turns logging off entirely.
	SilentMode bool `mapstructure:"silent_mode"`

	// Listener, when set, is used instead of binding Address.
	Listener net.Listener `mapstructure:"-"`

	Logger *log.Logger `mapstructure:"-"`

	router *Router[State]
}

func NewApplication[State any](address string) *Application[State] {
	logger := log.New("skiff")
	logger.SetLevel(log.INFO)
	return &Application[State]{
		Address: address,
		Logger:  logger,
		router:  NewRouter[State](),
	}
}

// AddHandler registers a route. See Router.AddHandler.
func (a *Application[State]) AddHandler(path string, h Handler[State]) error {
	return a.router.AddHandler(path, h)
}

// WithState installs the user state, copied per handler invocation.
func (a *Application[State]) WithState(state State) *Application[State] {
	a.router.WithState(state)
	return a
}

// WithFallback installs the handler invoked on route miss.
func (a *Application[State]) WithFallback(h Handler[State]) *Application[State] {
	a.router.WithFallback(h)
	return a
}

// Start seals the route tree and serves connections until the listener
// fails. Each accepted connection runs on its own goroutine; the accept
// loop never waits on a handler.
func (a *Application[State]) Start() error {
	if a.ConfigFile != "" {
		if err := a.loadConfigFile(); err != nil {
			return err
		}
	}
	if a.SilentMode {
		a.Logger.SetLevel(log.OFF)
	}

	servable := a.router.MakeServable()
	a.Logger.Info("registered routes:")
	servable.routes.walkRoutes(func(subpath string) {
		a.Logger.Infof("  %s", subpath)
	})

	listener := a.Listener
	if listener == nil {
		var err error
		if a.CertificatePath != "" {
			listener, err = a.listenTLS()
		} else {
			listener, err = net.Listen("tcp", a.Address)
		}
		if err != nil {
			return err
		}
	}
	a.Logger.Infof("listening on %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		go servable.handleConnection(conn, a.Logger)
	}
}

// handleConnection drives one connection through its dispatch cycle:
// read, parse, match, dispatch, encode, write, half-close.
func (s *Servable[State]) handleConnection(conn net.Conn, logger *log.Logger) {
	defer conn.Close()
	id := uuid.NewString()

	buf := make([]byte, ReadBufferSize)
	n, err := conn.Read(buf)
	if err != nil {
		logger.Debugf("{%s} (%s): read failed: %v", id, conn.RemoteAddr(), err)
		return
	}

	req, err := ParseRequest(buf[:n])
	if err != nil {
		logger.Debugf("{%s} (%s): could not parse request: %v", id, conn.RemoteAddr(), err)
		writeResponse(conn, StatusBadRequest, logger, id)
		return
	}
	logger.Debugf("{%s} (%s): %s %s", id, conn.RemoteAddr(), req.Line.Method, req.Line.Path)

	routing := s.Match(req.Line.Path)
	if routing == nil {
		if s.fallback != nil {
			resp := s.fallback.Handle(req, s.state, nil)
			if resp == nil {
				writeResponse(conn, StatusNotFound, logger, id)
				return
			}
			writeResponse(conn, resp, logger, id)
			return
		}
		logger.Debugf("{%s} (%s): no route for %s", id, conn.RemoteAddr(), req.Line.Path)
		writeResponse(conn, StatusNotFound, logger, id)
		return
	}

	resp := routing.Handler.Handle(req, s.state, mergeExtracts(routing.Extract, req.Query))
	if resp == nil {
		writeResponse(conn, StatusNotFound, logger, id)
		return
	}
	writeResponse(conn, resp, logger, id)
}

// mergeExtracts merges query-string pairs over pattern captures; a query
// value wins on key collision. A request with no pattern captures passes
// no extracts at all, even when a query string is present.
func mergeExtracts(extract map[string]string, query map[string]string) map[string]string {
	if extract == nil {
		return nil
	}
	for key, value := range query {
		extract[key] = value
	}
	return extract
}

type closeWriter interface {
	CloseWrite() error
}

func writeResponse(conn net.Conn, resp IntoResp, logger *log.Logger, id string) {
	w := bufio.NewWriter(conn)
	if _, err := w.Write(resp.IntoResponse()); err != nil {
		logger.Debugf("{%s} (%s): write failed: %v", id, conn.RemoteAddr(), err)
		return
	}
	if err := w.Flush(); err != nil {
		logger.Debugf("{%s} (%s): flush failed: %v", id, conn.RemoteAddr(), err)
		return
	}
	if cw, ok := conn.(closeWriter); ok {
		cw.CloseWrite()
	}
}
