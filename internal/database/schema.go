package database

import (
	"context"
	"database/sql"
	"time"
)

// ddl holds the statements that bring an empty database up to the current
// schema. Uniqueness rules live here rather than in application code:
// username and email are unique per user, a catalog movie may be attached
// once per user, and a user may review a movie once.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id              BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		username        VARCHAR(50)  NOT NULL,
		email           VARCHAR(255) NOT NULL,
		user_password   VARCHAR(255) NOT NULL,
		full_name       VARCHAR(100) NULL,
		bio             TEXT         NULL,
		profile_picture VARCHAR(255) NULL,
		created_at      TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_users_username (username),
		UNIQUE KEY uq_users_email (email)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id          BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id     BIGINT UNSIGNED NULL,
		external_id VARCHAR(50)  NOT NULL,
		title       VARCHAR(255) NOT NULL,
		year        INT          NULL,
		poster_url  VARCHAR(500) NULL,
		overview    TEXT         NULL,
		genres      VARCHAR(255) NULL,
		created_at  TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY uq_movies_user_external (user_id, external_id),
		CONSTRAINT fk_movies_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id         BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		movie_id   BIGINT UNSIGNED NOT NULL,
		rating     DOUBLE    NOT NULL,
		comment    TEXT      NULL,
		likes      INT       NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NULL ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_reviews_user_movie (user_id, movie_id),
		CONSTRAINT fk_reviews_user FOREIGN KEY (user_id) REFERENCES users (id),
		CONSTRAINT fk_reviews_movie FOREIGN KEY (movie_id) REFERENCES movies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates the application tables when they do not exist yet.
func EnsureSchema(db *sql.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, stmt := range ddl {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
