package sqlstore

// -----------------------------------------------------------------------------
// SCHEMA
// -----------------------------------------------------------------------------

const createVillasMySQL = `
CREATE TABLE IF NOT EXISTS villas (
  id           BIGINT        NOT NULL AUTO_INCREMENT,
  name         VARCHAR(255)  NOT NULL,
  details      TEXT          NOT NULL,
  rate         DOUBLE        NOT NULL DEFAULT 0,
  sqft         INT           NOT NULL DEFAULT 0,
  occupancy    INT           NOT NULL DEFAULT 0,
  image_url    VARCHAR(1024) NOT NULL DEFAULT '',
  amenity      VARCHAR(1024) NOT NULL DEFAULT '',
  created_date DATETIME(6)   NOT NULL,
  updated_date DATETIME(6)   NOT NULL,
  PRIMARY KEY (id),
  KEY idx_villas_name (name)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4
`

const createVillasPostgres = `
CREATE TABLE IF NOT EXISTS villas (
  id           BIGSERIAL     PRIMARY KEY,
  name         VARCHAR(255)  NOT NULL,
  details      TEXT          NOT NULL DEFAULT '',
  rate         DOUBLE PRECISION NOT NULL DEFAULT 0,
  sqft         INTEGER       NOT NULL DEFAULT 0,
  occupancy    INTEGER       NOT NULL DEFAULT 0,
  image_url    VARCHAR(1024) NOT NULL DEFAULT '',
  amenity      VARCHAR(1024) NOT NULL DEFAULT '',
  created_date TIMESTAMPTZ   NOT NULL,
  updated_date TIMESTAMPTZ   NOT NULL
)
`

const createVillasNameIdxPostgres = `CREATE INDEX IF NOT EXISTS idx_villas_lower_name ON villas (LOWER(name))`

// AUTOINCREMENT keeps ids from being reused after deletes.
const createVillasSQLite = `
CREATE TABLE IF NOT EXISTS villas (
  id           INTEGER  PRIMARY KEY AUTOINCREMENT,
  name         TEXT     NOT NULL,
  details      TEXT     NOT NULL DEFAULT '',
  rate         REAL     NOT NULL DEFAULT 0,
  sqft         INTEGER  NOT NULL DEFAULT 0,
  occupancy    INTEGER  NOT NULL DEFAULT 0,
  image_url    TEXT     NOT NULL DEFAULT '',
  amenity      TEXT     NOT NULL DEFAULT '',
  created_date DATETIME NOT NULL,
  updated_date DATETIME NOT NULL
)
`

const createVillasNameIdxSQLite = `CREATE INDEX IF NOT EXISTS idx_villas_lower_name ON villas (LOWER(name))`

// -----------------------------------------------------------------------------
// QUERIES (? placeholders; Dialect.Rebind numbers them for postgres)
// -----------------------------------------------------------------------------

const selectVillasSQL = `
SELECT id, name, details, rate, sqft, occupancy, image_url, amenity, created_date, updated_date
FROM villas`

const insertVillaSQL = `
INSERT INTO villas
  (name, details, rate, sqft, occupancy, image_url, amenity, created_date, updated_date)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?)`

// created_date is never rewritten.
const updateVillaSQL = `
UPDATE villas SET
  name         = ?,
  details      = ?,
  rate         = ?,
  sqft         = ?,
  occupancy    = ?,
  image_url    = ?,
  amenity      = ?,
  updated_date = ?
WHERE id = ?`

const deleteVillaSQL = `DELETE FROM villas WHERE id = ?`

const countVillaSQL = `SELECT COUNT(*) FROM villas WHERE id = ?`
