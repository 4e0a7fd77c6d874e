package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/minefield-server/internal/config"
	"github.com/avolkov/minefield-server/internal/middleware"
	"github.com/avolkov/minefield-server/internal/repository"
)

// Auth manages player accounts. An account is only needed to put a name on
// the highscore table; anonymous play works without one.
type Auth struct {
	logger  *slog.Logger
	repo    *repository.Queries
	cookies *config.Cookies
	jwt     *config.JWT
}

func NewAuth(
	logger *slog.Logger,
	db *pgxpool.Pool,
	cookies *config.Cookies,
	jwt *config.JWT,
) *Auth {
	return &Auth{
		logger:  logger,
		repo:    repository.New(db),
		cookies: cookies,
		jwt:     jwt,
	}
}

var (
	errBadAuthBody     = fmt.Errorf("request body must contain url-encoded username and password")
	errPasswordTooLong = fmt.Errorf("password too long")
	errUsernameTaken   = fmt.Errorf("username taken")
	errBadCredentials  = fmt.Errorf("invalid username or password")
)

func parseCredentials(r *http.Request) (username, password string, err error) {
	if err := r.ParseForm(); err != nil {
		return "", "", errBadAuthBody
	}
	username = r.FormValue("username")
	password = r.FormValue("password")
	if username == "" || password == "" {
		return "", "", errBadAuthBody
	}
	if len(password) > 72 { // bcrypt input limit
		return "", "", errPasswordTooLong
	}
	return username, password, nil
}

func (a Auth) signIn(w http.ResponseWriter, player *repository.Player) error {
	claims := config.NewPlayerClaims(player.PlayerId, player.Username)
	token, err := a.jwt.Sign(claims)
	if err != nil {
		return fmt.Errorf("unable to sign claims: %w", err)
	}
	return a.cookies.Refresh(w, token)
}

func (a Auth) Register(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, a.logger, wrapError(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to hash password", "error", err)
		return
	}

	player, err := a.repo.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgerrcode.IsIntegrityConstraintViolation(pgErr.Code) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, a.logger, wrapError(errUsernameTaken))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to create player", "error", err)
		return
	}

	if err := a.signIn(w, player); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to sign in new player", "error", err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (a Auth) Login(w http.ResponseWriter, r *http.Request) {
	username, password, err := parseCredentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, a.logger, wrapError(err))
		return
	}

	player, err := a.repo.FetchPlayer(r.Context(), username)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, a.logger, wrapError(errBadCredentials))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to fetch player", "error", err)
		return
	}

	err = bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, a.logger, wrapError(errBadCredentials))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("bcrypt compare error", "error", err)
		return
	}

	if err := a.signIn(w, player); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to sign in player", "error", err)
		return
	}
}

func (a Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
}

type authStatus struct {
	LoggedIn bool    `json:"logged_in"`
	PlayerId *int64  `json:"player_id,omitempty"`
	Username *string `json:"username,omitempty"`
}

func (a Auth) Status(w http.ResponseWriter, r *http.Request) {
	status := authStatus{}
	if claims, ok := middleware.PlayerClaims(r.Context()); ok {
		status.LoggedIn = true
		status.PlayerId = &claims.PlayerId
		status.Username = &claims.Username
	}
	sendJSONOrLog(w, a.logger, status)
}
