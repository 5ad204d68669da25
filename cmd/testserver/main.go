package main

import (
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/zacharygolba/via"
	"github.com/zacharygolba/via/middleware"
)

type Article struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Store is the shared application state handed to every request.
type Store struct {
	Articles *ArticleRepo
}

type ArticleRepo struct {
	mu     sync.RWMutex
	byID   map[int]Article
	nextID int
}

func NewArticleRepo(seed ...Article) *ArticleRepo {
	repo := &ArticleRepo{byID: make(map[int]Article)}
	for _, a := range seed {
		if a.ID > repo.nextID {
			repo.nextID = a.ID
		}
		repo.byID[a.ID] = a
	}
	return repo
}

func (r *ArticleRepo) List() []Article {
	r.mu.RLock()
	defer r.mu.RUnlock()
	articles := make([]Article, 0, len(r.byID))
	for _, a := range r.byID {
		articles = append(articles, a)
	}
	return articles
}

func (r *ArticleRepo) Get(id int) (Article, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.byID[id]
	return a, ok
}

func (r *ArticleRepo) Create(a Article) Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	a.ID = r.nextID
	r.byID[a.ID] = a
	return a
}

var listArticles via.MiddlewareFunc[Store] = func(req *via.Request[Store], _ via.Next[Store]) (*via.Response, error) {
	return via.NewJSONResult(req.State().Articles.List(), nil)
}

var showArticle via.MiddlewareFunc[Store] = func(req *via.Request[Store], _ via.Next[Store]) (*via.Response, error) {
	id, err := req.Param("id").Int()
	if err != nil {
		return nil, err
	}
	article, ok := req.State().Articles.Get(id)
	if !ok {
		return nil, via.Raisef(404, "article %d not found", id).AsJSON()
	}
	return via.NewJSONResult(article, nil)
}

var createArticle via.MiddlewareFunc[Store] = func(req *via.Request[Store], _ via.Next[Store]) (*via.Response, error) {
	var article Article
	if err := req.BindJSON(&article); err != nil {
		return nil, err
	}
	created := req.State().Articles.Create(article)
	return via.Build().Status(http.StatusCreated).JSON(created)
}

var echo via.MiddlewareFunc[Store] = func(req *via.Request[Store], _ via.Next[Store]) (*via.Response, error) {
	path, err := req.Param("path").Decode().Require()
	if err != nil {
		return nil, err
	}
	return via.Build().Text(path), nil
}

var home via.MiddlewareFunc[Store] = func(req *via.Request[Store], _ via.Next[Store]) (*via.Response, error) {
	name := req.Query().First("name").String()
	if name == "" {
		name = "world"
	}
	return via.Build().Text("Hello, " + name + "!"), nil
}

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()
	via.SetupVia(&log, 1*middleware.MB)

	app := via.NewApp(Store{
		Articles: NewArticleRepo(
			Article{ID: 1, Title: "Hello, world!", Body: "The first article."},
		),
	})

	app.At("/").Scope(func(root *via.Route[Store]) {
		root.Include(middleware.Recover[Store]())
		root.Include(middleware.RequestLog[Store]())
		root.Include(middleware.Timeout[Store](10 * time.Second))
		root.Respond(home)
	})

	app.At("/echo/*path").Respond(echo)

	app.At("/articles").Scope(func(articles *via.Route[Store]) {
		articles.Include(middleware.BodyLimit[Store](256 * middleware.KB))
		articles.Respond(
			via.Get[Store](listArticles).
				Post(createArticle).
				OrNotAllowed(),
		)
		articles.At("/:id").Respond(via.Get[Store](showArticle).OrNotAllowed())
	})

	addr := ":8080"
	if port := os.Getenv("PORT"); port != "" {
		if _, err := strconv.Atoi(port); err == nil {
			addr = ":" + port
		}
	}

	log.Info().Str("addr", addr).Msg("[via] test server listening")
	if err := http.ListenAndServe(addr, app); err != nil {
		log.Fatal().Err(err).Msg("[via] server exited")
	}
}
