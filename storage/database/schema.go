package database

const schema = `
CREATE TABLE IF NOT EXISTS "user" (
    id            SERIAL PRIMARY KEY,
    username      VARCHAR(64)  NOT NULL UNIQUE,
    first_name    VARCHAR(128) NOT NULL,
    last_name     VARCHAR(128) NOT NULL,
    role          VARCHAR(16)  NOT NULL,
    password_hash BYTEA        NOT NULL,
    deleted       BOOLEAN      NOT NULL DEFAULT FALSE,
    created_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
    updated_at    TIMESTAMPTZ  NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS participant (
    id         SERIAL PRIMARY KEY,
    first_name VARCHAR(128) NOT NULL,
    last_name  VARCHAR(128) NOT NULL,
    email      VARCHAR(254) NOT NULL,
    telephone  VARCHAR(32)  NOT NULL DEFAULT '',
    structure  VARCHAR(64)  NOT NULL DEFAULT '',
    profile    VARCHAR(16)  NOT NULL,
    deleted    BOOLEAN      NOT NULL DEFAULT FALSE
);

CREATE TABLE IF NOT EXISTS training (
    id         SERIAL PRIMARY KEY,
    title      VARCHAR(255)   NOT NULL,
    domain     VARCHAR(64)    NOT NULL DEFAULT '',
    start_date DATE           NOT NULL,
    end_date   DATE,
    budget     NUMERIC(12, 2) NOT NULL,
    venue      VARCHAR(128)   NOT NULL DEFAULT '',
    schedule   VARCHAR(64)    NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS participant_training (
    participant_id INT NOT NULL REFERENCES participant (id) ON DELETE CASCADE,
    training_id    INT NOT NULL REFERENCES training (id) ON DELETE CASCADE,
    PRIMARY KEY (participant_id, training_id)
);
`
