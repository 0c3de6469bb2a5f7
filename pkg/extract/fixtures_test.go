package extract

const ijsProtocol = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Judges Details per Skater</title></head>
<body>
<h1>Autumn Classic</h1>
<h2 class="catseg">Juvenile Girls - Free Skating</h2>
<table>
<tr><th>Rank</th><th>Name</th><th>TSS</th></tr>
<tr><td class="rank">1</td><td class="name">Jane DOE, Ice Club</td><td>45.10</td></tr>
<tr><td class="rank">2</td><td class="name">Ann ROE, Snow &amp; Ice FSC</td><td>40.00</td></tr>
<tr><td class="rank">3</td><td class="score">38.00</td></tr>
<tr><td class="rank">x</td><td class="name">Bad ROW, Ice Club</td></tr>
</table>
</body>
</html>`

const sixOResults = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Results</title></head>
<body>
<table>
<caption><h2>Results</h2><h2>Preliminary Girls Free Skate</h2></caption>
<tr><td>1.</td><td rowspan="1" colspan="1">Mary SMITH, Lakeside FSC</td><td>1.0</td></tr>
<tr><td>2.</td><td colspan="1" rowspan="1">Kim LEE, Greater Metropolitan Figur...</td></tr>
<tr><td>3.</td><td rowspan="1" colspan="1">Pat ONE, Duo Club<br>Sam TWO, Duo Club</td></tr>
<tr><td>&nbsp;</td><td rowspan="1" colspan="1">Wd SKATER, Lakeside FSC</td></tr>
<tr><td>x.</td><td rowspan="1" colspan="1">Bad RANK, Lakeside FSC</td></tr>
</table>
</body>
</html>`
