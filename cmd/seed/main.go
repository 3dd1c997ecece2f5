package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/sync/errgroup"

	"blog-api/internal/domain"
	"blog-api/pkg/database"
)

const blogCount = 25

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "blog"
	}

	ctx := context.Background()
	db, err := database.NewMongoDB(ctx, mongoURI, dbName)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Close(ctx)

	if err := seed(ctx, db); err != nil {
		log.Fatalf("Failed to seed data: %v", err)
	}

	fmt.Println("✅ Data seeded successfully")
}

func seed(ctx context.Context, db *database.MongoDB) error {
	user := &domain.User{
		ID:        bson.NewObjectID().Hex(),
		Email:     "jane.wanderer@example.com",
		Name:      "Jane Wanderer",
		Picture:   "https://picsum.photos/seed/jane/200/200",
		CreatedAt: time.Now().UTC(),
	}

	if _, err := db.Collection(database.UsersCollection).InsertOne(ctx, user); err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	log.Printf("User document inserted with _id: %s", user.ID)

	blogs := make([]interface{}, 0, blogCount)
	for i := 0; i < blogCount; i++ {
		blog, err := buildBlog(ctx, user.ID, i)
		if err != nil {
			return err
		}
		blogs = append(blogs, blog)
	}

	result, err := db.Collection(database.BlogsCollection).InsertMany(ctx, blogs)
	if err != nil {
		return fmt.Errorf("failed to insert blogs: %w", err)
	}
	log.Printf("%d blog documents were inserted", len(result.InsertedIDs))

	return nil
}

// buildBlog constructs one sample post; its two illustration URLs are
// resolved concurrently
func buildBlog(ctx context.Context, userID string, n int) (*domain.Blog, error) {
	var urls [2]string

	g, gctx := errgroup.WithContext(ctx)
	for i := range urls {
		g.Go(func() error {
			url, err := randomImageURL(gctx)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &domain.Blog{
		ID:        bson.NewObjectID().Hex(),
		Title:     fmt.Sprintf("The three greatest things you learn from traveling (part %d)", n+1),
		Content:   fmt.Sprintf(contentTemplate, urls[0], urls[1]),
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// randomImageURL asks Lorem Picsum for a random image and returns the URL it
// redirects to
func randomImageURL(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://picsum.photos/600/400", nil)
	if err != nil {
		return "", err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}

const contentTemplate = `
	<h1>The three greatest things you learn from traveling</h1>
	<p>Like all the great things on earth traveling teaches us by example. Here are some of the most precious lessons I've learned over the years of traveling.</p>

	<img src="%s" alt="Lone wanderer at Mount Bromo" style="width: 100%%; height: auto;">

	<h2>Leaving your comfort zone might lead you to such beautiful sceneries like this one.</h2>
	<p>A lone wanderer looking at Mount Bromo volcano in Indonesia.</p>

	<h2>Appreciation of diversity</h2>
	<p>Getting used to an entirely different culture can be challenging. While it's also nice to learn about cultures online or from books, nothing comes close to experiencing cultural diversity in person. You learn to appreciate each and every single one of the differences while you become more culturally fluid.</p>
	<blockquote>"The real voyage of discovery consists not in seeking new landscapes, but having new eyes." - Marcel Proust</blockquote>

	<h2>Improvisation</h2>
	<p>Life doesn't allow us to execute every single plan perfectly. This especially seems to be the case when you travel. You plan it down to every minute with a big checklist. But when it comes to executing it, something always comes up and you're left with your improvising skills. You learn to adapt as you go. Here's how my travel checklist looks now:</p>
	<ul>
		<li>Buy the ticket</li>
		<li>Start your adventure</li>
	</ul>

	<img src="%s" alt="Three monks ascending the stairs of an ancient temple" style="width: 100%%; height: auto;">

	<h2>Confidence</h2>
	<p>Going to a new place can be quite terrifying. While change and uncertainty make us scared, traveling teaches us how ridiculous it is to be afraid of something before it happens. The moment you face your fear and see there is nothing to be afraid of, is the moment you discover bliss.</p>
`
