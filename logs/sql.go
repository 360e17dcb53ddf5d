package logs

const createSeriesTable = `
CREATE TABLE IF NOT EXISTS series (
  id integer primary key autoincrement,
  started datetime,
  player1 varchar not null,
  player2 varchar not null,
  planned int,
  winner varchar
)`

const createGameTable = `
CREATE TABLE IF NOT EXISTS games (
  series integer not null references series(id),
  seq int not null,
  played datetime,
  grid_rows int,
  grid_cols int,
  winner varchar not null,
  loser varchar not null,
  reason string,
  cheated boolean,
  turns int,
  PRIMARY KEY (series, seq)
)`

const createPlayerView = `
CREATE VIEW IF NOT EXISTS player_games (
  series, seq, player, opponent, win, reason, cheated, turns
) AS
SELECT series, seq, winner, loser, 'win', reason, 0, turns
 FROM games
UNION ALL
SELECT series, seq, loser, winner, 'lose', reason, cheated, turns
 FROM games
`

const insertSeries = `
INSERT INTO series (started, player1, player2, planned, winner)
VALUES (:started, :player1, :player2, :planned, :winner)
`

const insertGame = `
INSERT INTO games (series, seq, played, grid_rows, grid_cols, winner, loser, reason, cheated, turns)
VALUES (:series, :seq, :played, :grid_rows, :grid_cols, :winner, :loser, :reason, :cheated, :turns)
`

const selectGames = `
SELECT * FROM games WHERE series = ? ORDER BY seq
`

const selectStandings = `
SELECT player,
       SUM(win = 'win') AS wins,
       SUM(win = 'lose') AS losses,
       SUM(cheated) AS forfeits
 FROM player_games
 GROUP BY player
 ORDER BY wins DESC, losses ASC, player ASC
`
