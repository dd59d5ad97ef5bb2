package service

import (
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go-todo-api/internal/model"
	"go-todo-api/internal/util"
	"go-todo-api/pkg/apierror"
)

const (
	minBookRating      = 1
	maxBookRating      = 5
	minPublishedDate   = 1991
	maxPublishedDate   = 2030
	minBookTitle       = 3
	maxBookDescription = 100
)

// SeedBooks is the catalog a fresh process starts with.
var SeedBooks = []model.Book{
	{ID: 1, Title: "Computer Science Pro", Author: "codingwithroby", Description: "A very nice book!", Rating: 5, PublishedDate: 2030},
	{ID: 2, Title: "Be Fast with FastAPI", Author: "codingwithroby", Description: "A great book!", Rating: 5, PublishedDate: 2030},
	{ID: 3, Title: "Master Endpoints", Author: "codingwithroby", Description: "A awesome book!", Rating: 5, PublishedDate: 2029},
	{ID: 4, Title: "HP1", Author: "Author 1", Description: "Book Description", Rating: 2, PublishedDate: 2028},
	{ID: 5, Title: "HP2", Author: "Author 2", Description: "Book Description", Rating: 3, PublishedDate: 2027},
	{ID: 6, Title: "HP3", Author: "Author 3", Description: "Book Description", Rating: 1, PublishedDate: 2026},
}

// SeedShelf is the title-keyed catalog: category instead of rating and
// publication year.
var SeedShelf = []model.Book{
	{ID: 1, Title: "Title One", Author: "Author One", Category: "science"},
	{ID: 2, Title: "Title Two", Author: "Author Two", Category: "science"},
	{ID: 3, Title: "Title Three", Author: "Author Three", Category: "history"},
	{ID: 4, Title: "Title Four", Author: "Author Four", Category: "math"},
	{ID: 5, Title: "Title Five", Author: "Author Five", Category: "math"},
	{ID: 6, Title: "Title Six", Author: "Author Two", Category: "math"},
}

// BookService is an in-memory catalog. Order is insertion order and a new
// book takes the last book's id plus one.
type BookService struct {
	mu       sync.RWMutex
	books    []model.Book
	validate func(model.BookRequest) error
}

// NewBookService returns the rated catalog.
func NewBookService(seed bool) *BookService {
	return newCatalog(seed, SeedBooks, validateBook)
}

// NewShelfService returns the categorised catalog addressed by title.
func NewShelfService(seed bool) *BookService {
	return newCatalog(seed, SeedShelf, validateShelfBook)
}

func newCatalog(seed bool, initial []model.Book, validate func(model.BookRequest) error) *BookService {
	s := &BookService{books: []model.Book{}, validate: validate}
	if seed {
		s.books = append(s.books, initial...)
	}
	return s
}

func (s *BookService) List(filter model.BookFilter) ([]model.Book, error) {
	if filter.Rating != 0 && (filter.Rating < minBookRating || filter.Rating > maxBookRating) {
		return nil, apierror.BadRequest(fmt.Sprintf("rating must be between %d and %d", minBookRating, maxBookRating), "rating")
	}
	if filter.PublishedDate != 0 && (filter.PublishedDate < minPublishedDate || filter.PublishedDate > maxPublishedDate) {
		return nil, apierror.BadRequest(
			fmt.Sprintf("published_date must be between %d and %d", minPublishedDate, maxPublishedDate), "published_date")
	}
	author := strings.TrimSpace(filter.Author)
	category := strings.TrimSpace(filter.Category)

	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Book, 0, len(s.books))
	for _, book := range s.books {
		if filter.Rating != 0 && book.Rating != filter.Rating {
			continue
		}
		if filter.PublishedDate != 0 && book.PublishedDate != filter.PublishedDate {
			continue
		}
		if author != "" && !strings.EqualFold(book.Author, author) {
			continue
		}
		if category != "" && !strings.EqualFold(book.Category, category) {
			continue
		}
		items = append(items, book)
	}

	return items, nil
}

func (s *BookService) Get(id int64) (model.Book, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, book := range s.books {
		if book.ID == id {
			return book, nil
		}
	}

	return model.Book{}, fmt.Errorf("book %d: %w", id, model.ErrBookNotFound)
}

// FindByTitle returns the first book whose title matches, ignoring case.
func (s *BookService) FindByTitle(title string) (model.Book, error) {
	title = strings.TrimSpace(title)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, book := range s.books {
		if strings.EqualFold(book.Title, title) {
			return book, nil
		}
	}

	return model.Book{}, fmt.Errorf("book %q: %w", title, model.ErrBookNotFound)
}

func (s *BookService) Create(req model.BookRequest) (model.Book, error) {
	if err := s.validate(req); err != nil {
		return model.Book{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	book := bookFromRequest(req)
	book.ID = 1
	if len(s.books) > 0 {
		book.ID = s.books[len(s.books)-1].ID + 1
	}
	s.books = append(s.books, book)

	return book, nil
}

// Update replaces the book whose id is carried in the request body.
func (s *BookService) Update(req model.BookRequest) error {
	if req.ID <= 0 {
		return apierror.BadRequest("id is required", "id")
	}
	if err := s.validate(req); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == req.ID {
			s.books[i] = bookFromRequest(req)
			return nil
		}
	}

	return fmt.Errorf("book %d: %w", req.ID, model.ErrBookNotFound)
}

// UpdateByTitle replaces every book whose title matches the request title,
// ignoring case. Ids are kept.
func (s *BookService) UpdateByTitle(req model.BookRequest) error {
	if err := s.validate(req); err != nil {
		return err
	}
	title := util.CleanText(req.Title)

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := 0
	for i := range s.books {
		if strings.EqualFold(s.books[i].Title, title) {
			book := bookFromRequest(req)
			book.ID = s.books[i].ID
			s.books[i] = book
			updated++
		}
	}

	if updated == 0 {
		return fmt.Errorf("book %q: %w", title, model.ErrBookNotFound)
	}
	return nil
}

// DeleteByTitle removes the first book whose title matches, ignoring case.
func (s *BookService) DeleteByTitle(title string) error {
	title = strings.TrimSpace(title)

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if strings.EqualFold(s.books[i].Title, title) {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("book %q: %w", title, model.ErrBookNotFound)
}

func (s *BookService) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.books {
		if s.books[i].ID == id {
			s.books = append(s.books[:i], s.books[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("book %d: %w", id, model.ErrBookNotFound)
}

func bookFromRequest(req model.BookRequest) model.Book {
	return model.Book{
		ID:            req.ID,
		Title:         util.CleanText(req.Title),
		Author:        util.CleanText(req.Author),
		Category:      util.CleanText(req.Category),
		Description:   util.CleanText(req.Description),
		Rating:        req.Rating,
		PublishedDate: req.PublishedDate,
	}
}

func validateBook(req model.BookRequest) error {
	if utf8.RuneCountInString(util.CleanText(req.Title)) < minBookTitle {
		return apierror.BadRequest(fmt.Sprintf("title must be at least %d characters", minBookTitle), "title")
	}
	if util.CleanText(req.Author) == "" {
		return apierror.BadRequest("author is required", "author")
	}
	if n := utf8.RuneCountInString(util.CleanText(req.Description)); n < 1 || n > maxBookDescription {
		return apierror.BadRequest(fmt.Sprintf("description must be between 1 and %d characters", maxBookDescription), "description")
	}
	if req.Rating < minBookRating || req.Rating > maxBookRating {
		return apierror.BadRequest(fmt.Sprintf("rating must be between %d and %d", minBookRating, maxBookRating), "rating")
	}
	return nil
}

func validateShelfBook(req model.BookRequest) error {
	if util.CleanText(req.Title) == "" {
		return apierror.BadRequest("title is required", "title")
	}
	if util.CleanText(req.Author) == "" {
		return apierror.BadRequest("author is required", "author")
	}
	if util.CleanText(req.Category) == "" {
		return apierror.BadRequest("category is required", "category")
	}
	if utf8.RuneCountInString(util.CleanText(req.Description)) > maxBookDescription {
		return apierror.BadRequest(fmt.Sprintf("description must be at most %d characters", maxBookDescription), "description")
	}
	if req.Rating != 0 && (req.Rating < minBookRating || req.Rating > maxBookRating) {
		return apierror.BadRequest(fmt.Sprintf("rating must be between %d and %d", minBookRating, maxBookRating), "rating")
	}
	return nil
}
