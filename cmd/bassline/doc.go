// Command bassline maintains a bass song catalog from Rocksmith 2014 PSARC
// archives and recommends songs matched to the player's demonstrated skill.
package main
